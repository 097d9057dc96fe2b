package booking

import (
	"context"
	"errors"
	"time"

	"github.com/atendoapp/agenda-api/internal/audit"
	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/models"
)

// ======================================================
// Fakes em memória para os use cases
// ======================================================

type fakeRepo struct {
	services map[uint]*models.Service
	users    map[uint]models.User
	windows  []models.AvailabilityWindow
	bookings []*models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: map[uint]*models.Service{},
		users:    map[uint]models.User{},
	}
}

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return svc, nil
}

func (r *fakeRepo) ListWindows(_ context.Context, weekday int) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.Weekday == weekday && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsForDay(_ context.Context, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, bk := range r.bookings {
		if !r.isActive(bk) {
			continue
		}
		if bk.StartTime.Before(end) && bk.EndTime.After(start) {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateBookingIfFree(_ context.Context, bk *models.Booking) error {
	candidate := domain.Interval{Start: bk.StartTime, End: bk.EndTime}
	for _, other := range r.bookings {
		if !r.isActive(other) {
			continue
		}
		if domain.Overlaps(candidate, domain.Interval{Start: other.StartTime, End: other.EndTime}) {
			return httperr.ErrBusiness("slot_conflict")
		}
	}

	r.nextID++
	bk.ID = r.nextID
	r.bookings = append(r.bookings, bk)
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	for _, bk := range r.bookings {
		if bk.ID == id {
			return r.hydrate(bk), nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) GetBookingByReference(_ context.Context, reference string) (*models.Booking, error) {
	for _, bk := range r.bookings {
		if bk.Reference == reference {
			return r.hydrate(bk), nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *fakeRepo) UpdateBooking(_ context.Context, bk *models.Booking) error {
	for i, other := range r.bookings {
		if other.ID == bk.ID {
			copied := *bk
			r.bookings[i] = &copied
			return nil
		}
	}
	return errors.New("record not found")
}

func (r *fakeRepo) ListBookingsForPeriod(_ context.Context, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, bk := range r.bookings {
		if !bk.StartTime.Before(start) && bk.StartTime.Before(end) {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsForUser(_ context.Context, userID uint) ([]models.Booking, error) {
	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.UserID == userID {
			out = append(out, *bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) isActive(bk *models.Booking) bool {
	for _, st := range domain.ActiveStatuses() {
		if bk.Status == st {
			return true
		}
	}
	return false
}

func (r *fakeRepo) hydrate(bk *models.Booking) *models.Booking {
	copied := *bk
	copied.User = r.users[bk.UserID]
	if svc, ok := r.services[bk.ServiceID]; ok {
		copied.Service = *svc
	}
	return &copied
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------

type fakeProvider struct {
	calls int
	fail  bool
}

func (p *fakeProvider) CreateCheckout(_ context.Context, reference, _ string, _ float64) (string, string, error) {
	p.calls++
	if p.fail {
		return "", "", errors.New("provider unavailable")
	}
	return "pref-" + reference, "https://pay.example/" + reference, nil
}

type fakeCalendar struct {
	calls    int
	lastSpan domain.Interval
}

func (c *fakeCalendar) CreateEvent(_ context.Context, _, _ string, start, end time.Time, _ string) (string, error) {
	c.calls++
	c.lastSpan = domain.Interval{Start: start, End: end}
	return "evt-123", nil
}

type fakeAudit struct {
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}
