package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atendoapp/agenda-api/internal/httperr"
	"github.com/atendoapp/agenda-api/internal/httpresp"
	infraRepo "github.com/atendoapp/agenda-api/internal/infra/repository"
	"github.com/atendoapp/agenda-api/internal/middleware"
	"github.com/atendoapp/agenda-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db       *gorm.DB
	audit    booking.AuditTrail
	provider booking.CheckoutProvider
	tz       string
}

func NewBookingHandler(
	db *gorm.DB,
	auditDispatcher booking.AuditTrail,
	provider booking.CheckoutProvider,
	tz string,
) *BookingHandler {
	return &BookingHandler{
		db:       db,
		audit:    auditDispatcher,
		provider: provider,
		tz:       tz,
	}
}

// ======================================================
// DTOs
// ======================================================

type CheckoutRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:mm
	Notes     string `json:"notes"`
}

// ======================================================
// CHECKOUT (cliente autenticado)
// ======================================================

func (h *BookingHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewCreateCheckout(repo, h.provider, h.audit, h.tz)

	res, err := uc.Execute(
		c.Request.Context(),
		booking.CreateCheckoutInput{
			UserID:    userID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			Time:      req.Time,
			Notes:     req.Notes,
		},
	)

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":      res.Booking,
		"redirect_url": res.RedirectURL,
	})
}

// ======================================================
// MY BOOKINGS
// ======================================================

func (h *BookingHandler) MyBookings(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	repo := infraRepo.NewBookingGormRepository(h.db)

	bookings, err := repo.ListBookingsForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar reservas.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL (cliente cancela a própria; admin cancela qualquer)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewCancelBooking(repo, h.audit)

	bk, err := uc.Execute(c.Request.Context(), uint(id), userID, role)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, bk)
}

// ======================================================
// ADMIN: LISTAGEM POR DIA / MÊS
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewListBookingsByDate(repo, h.tz)

	bookings, err := uc.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar reservas.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	monthStr := c.Query("month") // YYYY-MM
	if monthStr == "" {
		httperr.BadRequest(c, "missing_month", "Mês obrigatório.")
		return
	}

	month, err := parseMonth(h.tz, monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewListBookingsByMonth(repo, h.tz)

	bookings, err := uc.Execute(c.Request.Context(), month.Year(), int(month.Month()))
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar reservas.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// ADMIN: COMPLETE
// ======================================================

func (h *BookingHandler) Complete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewCompleteBooking(repo, h.audit)

	bk, err := uc.Execute(c.Request.Context(), uint(id), adminID)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, bk)
}

// ======================================================
// ERROS DE NEGÓCIO → HTTP
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou horário inválidos.")

	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")

	case httperr.IsBusiness(err, "invalid_duration"):
		httperr.BadRequest(c, "invalid_duration", "Serviço com duração inválida.")

	case httperr.IsBusiness(err, "slot_in_past"):
		httperr.BadRequest(c, "slot_in_past", "Horário já passou.")

	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")

	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", "Horário já reservado.")

	case httperr.IsBusiness(err, "checkout_failed"):
		httperr.Internal(c, "checkout_failed", "Erro ao iniciar o pagamento.")

	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Reserva não encontrada.")

	case httperr.IsBusiness(err, "not_allowed"):
		httperr.Forbidden(c, "not_allowed", "Operação não permitida.")

	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Reserva não permite esta operação.")

	default:
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
