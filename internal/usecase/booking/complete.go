package booking

import (
	"context"
	"time"

	"github.com/atendoapp/agenda-api/internal/audit"
	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/models"
	"github.com/atendoapp/agenda-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit AuditTrail

	now func() time.Time
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher AuditTrail,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: auditDispatcher,
		now:   timezone.Now,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	adminID uint,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Complete(bk, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
