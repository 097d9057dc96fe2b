package booking

import (
	"context"
	"time"

	"github.com/atendoapp/agenda-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Availability --------
	ListWindows(
		ctx context.Context,
		weekday int,
	) ([]models.AvailabilityWindow, error)

	ListBookingsForDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingIfFree precisa ser atômico em relação a escritores
	// concorrentes: checar conflito e inserir na mesma transação, com a
	// constraint de exclusão do banco como última linha de defesa.
	CreateBookingIfFree(
		ctx context.Context,
		bk *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	GetBookingByReference(
		ctx context.Context,
		reference string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	// -------- Listing --------
	ListBookingsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)
}
