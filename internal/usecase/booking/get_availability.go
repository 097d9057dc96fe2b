package booking

import (
	"context"
	"time"

	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  timezone.Now,
	}
}

// Execute devolve a lista completa de slots do dia, disponíveis e
// indisponíveis — quem apresenta decide o que esconder.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	weekday := int(in.Date.Weekday())

	rows, err := uc.repo.ListWindows(ctx, weekday)
	if err != nil {
		return nil, err
	}

	windows := make([]domain.Window, 0, len(rows))
	for _, row := range rows {
		start, err := domain.ParseLocalTime(row.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseLocalTime(row.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, domain.Window{Start: start, End: end})
	}

	dayStart := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		in.Date.Location(),
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	booked := make([]domain.Interval, 0, len(bookings))
	for _, bk := range bookings {
		booked = append(booked, domain.Interval{
			Start: bk.StartTime,
			End:   bk.EndTime,
		})
	}

	return domain.GenerateSlots(dayStart, service.DurationMin, windows, booked, uc.now())
}
