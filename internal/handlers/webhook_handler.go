package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atendoapp/agenda-api/internal/httperr"
	infraRepo "github.com/atendoapp/agenda-api/internal/infra/repository"
	"github.com/atendoapp/agenda-api/internal/usecase/booking"
)

// ======================================================
// WEBHOOK DE PAGAMENTO (Mercado Pago)
// ======================================================

// PaymentGateway consulta um pagamento no provedor e devolve a
// external_reference da reserva e se o pagamento foi aprovado.
type PaymentGateway interface {
	GetPaymentReference(ctx context.Context, paymentID int) (string, bool, error)
}

type WebhookHandler struct {
	db       *gorm.DB
	gateway  PaymentGateway
	secret   string
	calendar booking.CalendarSync
	audit    booking.AuditTrail
}

func NewWebhookHandler(
	db *gorm.DB,
	gateway PaymentGateway,
	secret string,
	calendar booking.CalendarSync,
	auditDispatcher booking.AuditTrail,
) *WebhookHandler {
	return &WebhookHandler{
		db:       db,
		gateway:  gateway,
		secret:   secret,
		calendar: calendar,
		audit:    auditDispatcher,
	}
}

func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	// o Mercado Pago notifica vários eventos; só pagamento interessa
	if c.Query("type") != "payment" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	dataID := c.Query("data.id")
	if dataID == "" {
		httperr.BadRequest(c, "missing_data_id", "Notificação sem identificador.")
		return
	}

	if h.secret != "" && !h.verifySignature(c, dataID) {
		httperr.Unauthorized(c, "invalid_signature", "Assinatura inválida.")
		return
	}

	paymentID, err := strconv.Atoi(dataID)
	if err != nil {
		httperr.BadRequest(c, "invalid_data_id", "Identificador inválido.")
		return
	}

	reference, approved, err := h.gateway.GetPaymentReference(c.Request.Context(), paymentID)
	if err != nil {
		log.Printf("webhook: payment lookup %d failed: %v", paymentID, err)
		httperr.Internal(c, "payment_lookup_failed", "Erro ao consultar pagamento.")
		return
	}

	if !approved {
		c.JSON(http.StatusOK, gin.H{"status": "not_approved"})
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewConfirmPayment(repo, h.calendar, h.audit)

	bk, err := uc.Execute(c.Request.Context(), reference)
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			// reserva desconhecida: responde 200 para o provedor parar
			// de reenviar
			c.JSON(http.StatusOK, gin.H{"status": "unknown_reference"})
			return
		}
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "confirmed",
		"booking": bk.ID,
	})
}

// verifySignature valida o header x-signature do Mercado Pago:
// "ts=<unix>,v1=<hmac>", onde v1 = HMAC-SHA256(secret,
// "id:{data.id};request-id:{x-request-id};ts:{ts};").
func (h *WebhookHandler) verifySignature(c *gin.Context, dataID string) bool {
	signature := c.GetHeader("x-signature")
	requestID := c.GetHeader("x-request-id")
	if signature == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(signature, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ts":
			ts = kv[1]
		case "v1":
			v1 = kv[1]
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}
