package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListWindows(
	ctx context.Context,
	weekday int,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("weekday = ? AND active = true", weekday).
		Order("start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"status IN ? AND start_time < ? AND end_time > ?",
			domain.ActiveStatuses(), end, start,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBookingIfFree roda checagem de conflito + insert na MESMA transação,
// com lock das linhas concorrentes. Mesmo assim a constraint de exclusão do
// banco fica de guarda: se outro escritor passar primeiro, o insert devolve
// 23P01 e mapeamos para o mesmo slot_conflict.
func (r *BookingGormRepository) CreateBookingIfFree(
	ctx context.Context,
	bk *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"status IN ? AND start_time < ? AND end_time > ?",
				domain.ActiveStatuses(),
				bk.EndTime,
				bk.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("slot_conflict")
		}

		return tx.Create(bk).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("slot_conflict")
	}

	return err
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		First(&bk, id).Error; err != nil {
		return nil, err
	}

	return &bk, nil
}

func (r *BookingGormRepository) GetBookingByReference(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Where("reference = ?", reference).
		First(&bk).Error; err != nil {
		return nil, err
	}

	return &bk, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(bk).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Where(
			"start_time >= ? AND start_time < ?",
			start,
			end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
