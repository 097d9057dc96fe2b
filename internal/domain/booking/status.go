package booking

import "github.com/atendoapp/agenda-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// ===============================
// Validations
// ===============================

// CanConfirm: só reserva aguardando pagamento confirma
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: reserva pendente ou confirmada pode ser cancelada
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: só reserva confirmada é concluída
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// ActiveStatuses são os status que ocupam a agenda (bloqueiam slots).
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}
