package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/atendoapp/agenda-api/internal/audit"
	domain "github.com/atendoapp/agenda-api/internal/domain/booking"
	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/models"
	"github.com/atendoapp/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateCheckoutInput struct {
	UserID    uint
	ServiceID uint

	Date string // YYYY-MM-DD
	Time string // HH:MM

	Notes string
}

type CheckoutResult struct {
	Booking     *models.Booking
	RedirectURL string
}

// CheckoutProvider é o provedor de pagamento: cria a sessão de checkout
// para o valor e devolve (id da sessão, url de redirect).
type CheckoutProvider interface {
	CreateCheckout(
		ctx context.Context,
		reference string,
		title string,
		amount float64,
	) (string, string, error)
}

// AuditTrail é satisfeita pelo audit.Dispatcher.
type AuditTrail interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// USE CASE
// ======================================================

type CreateCheckout struct {
	repo     domain.Repository
	provider CheckoutProvider
	audit    AuditTrail

	loc *time.Location
	now func() time.Time
}

func NewCreateCheckout(
	repo domain.Repository,
	provider CheckoutProvider,
	auditDispatcher AuditTrail,
	tz string,
) *CreateCheckout {
	return &CreateCheckout{
		repo:     repo,
		provider: provider,
		audit:    auditDispatcher,
		loc:      timezone.Location(tz),
		now:      timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateCheckout) Execute(
	ctx context.Context,
	in CreateCheckoutInput,
) (*CheckoutResult, error) {

	// --------------------------------------------------
	// 1️⃣ Data / hora validadas na borda
	// --------------------------------------------------
	slotTime, err := domain.ParseLocalTime(in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	day, err := time.ParseInLocation("2006-01-02", in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	start := slotTime.At(day)

	// --------------------------------------------------
	// 2️⃣ Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 3️⃣ Passado não se reserva
	// --------------------------------------------------
	if start.Before(uc.now()) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	// --------------------------------------------------
	// 4️⃣ Dentro de alguma janela de atendimento
	// --------------------------------------------------
	rows, err := uc.repo.ListWindows(ctx, int(start.Weekday()))
	if err != nil {
		return nil, err
	}

	windows := make([]domain.Window, 0, len(rows))
	for _, row := range rows {
		ws, err := domain.ParseLocalTime(row.StartTime)
		if err != nil {
			return nil, err
		}
		we, err := domain.ParseLocalTime(row.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, domain.Window{Start: ws, End: we})
	}

	candidate := domain.Interval{Start: start, End: end}
	if !domain.FitsAnyWindow(candidate, day, windows) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 5️⃣ Conflito + insert, atômicos (PENDING bloqueia o slot)
	// --------------------------------------------------
	bk := &models.Booking{
		Reference:     uuid.NewString(),
		UserID:        in.UserID,
		ServiceID:     service.ID,
		StartTime:     start,
		EndTime:       end,
		Status:        string(domain.InitialStatus()),
		PaymentStatus: domain.PaymentUnpaid,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateBookingIfFree(ctx, bk); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Sessão de pagamento
	// --------------------------------------------------
	sessionID, redirectURL, err := uc.provider.CreateCheckout(
		ctx,
		bk.Reference,
		service.Name,
		service.Price,
	)
	if err != nil {
		// sem sessão de pagamento a reserva não pode segurar o slot
		if cancelErr := domain.Cancel(bk, uc.now()); cancelErr == nil {
			if updErr := uc.repo.UpdateBooking(ctx, bk); updErr != nil {
				log.Printf("failed to release booking %d after checkout error: %v", bk.ID, updErr)
			}
		}
		return nil, httperr.ErrBusiness("checkout_failed")
	}

	bk.PaymentSessionID = sessionID
	if err := uc.repo.UpdateBooking(ctx, bk); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &bk.ID,
	})

	return &CheckoutResult{
		Booking:     bk,
		RedirectURL: redirectURL,
	}, nil
}
