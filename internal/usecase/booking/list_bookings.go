package booking

import (
	"context"
	"time"

	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/models"
	"github.com/atendoapp/agenda-api/internal/timezone"
)

type ListBookingsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListBookingsByDate(repo domain.Repository, tz string) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
		loc:  timezone.Location(tz),
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]models.Booking, error) {

	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		uc.loc,
	)
	end := start.Add(24 * time.Hour)

	return uc.repo.ListBookingsForPeriod(ctx, start, end)
}

type ListBookingsByMonth struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListBookingsByMonth(repo domain.Repository, tz string) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
		loc:  timezone.Location(tz),
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]models.Booking, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

	return uc.repo.ListBookingsForPeriod(ctx, start, end)
}
