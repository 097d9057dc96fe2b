package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atendoapp/agenda-api/internal/audit"
	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/models"
	"github.com/atendoapp/agenda-api/internal/timezone"
)

// CalendarSync cria o evento na agenda externa quando a reserva confirma.
type CalendarSync interface {
	CreateEvent(
		ctx context.Context,
		summary string,
		description string,
		start time.Time,
		end time.Time,
		attendee string,
	) (string, error)
}

type ConfirmPayment struct {
	repo     domain.Repository
	calendar CalendarSync // opcional; nil = sync desligado
	audit    AuditTrail

	now func() time.Time
}

func NewConfirmPayment(
	repo domain.Repository,
	calendar CalendarSync,
	auditDispatcher AuditTrail,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		calendar: calendar,
		audit:    auditDispatcher,
		now:      timezone.Now,
	}
}

// Execute transiciona PENDING → CONFIRMED a partir do webhook de pagamento.
// Replays do provedor são idempotentes: reserva já confirmada é no-op.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	reference string,
) (*models.Booking, error) {

	bk, err := uc.repo.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if bk.Status == string(domain.StatusConfirmed) {
		return bk, nil
	}

	if err := domain.Confirm(bk, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	// sync de agenda é melhor esforço: falha vira log, não erro
	if uc.calendar != nil {
		eventID, err := uc.calendar.CreateEvent(
			ctx,
			fmt.Sprintf("Booking: %s", bk.Service.Name),
			bk.Service.Description,
			bk.StartTime,
			bk.EndTime,
			bk.User.Email,
		)
		if err != nil {
			log.Printf("calendar sync failed for booking %d: %v", bk.ID, err)
		} else {
			bk.CalendarEventID = eventID
			if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
				log.Printf("failed to store calendar event id for booking %d: %v", bk.ID, err)
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &bk.UserID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return bk, nil
}
