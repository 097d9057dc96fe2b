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

type CancelBooking struct {
	repo  domain.Repository
	audit AuditTrail

	now func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	auditDispatcher AuditTrail,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: auditDispatcher,
		now:   timezone.Now,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	requesterID uint,
	requesterRole string,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	// cliente só cancela a própria reserva
	if requesterRole != "admin" && bk.UserID != requesterID {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	if err := domain.Cancel(bk, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
