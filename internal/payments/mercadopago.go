package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// ======================================================
// MERCADO PAGO (Checkout Pro)
// ======================================================

// Client encapsula o fluxo de checkout: cria uma preference com a reserva
// como external_reference e devolve a URL de redirecionamento; depois o
// webhook consulta o pagamento para saber se foi aprovado.
type Client struct {
	preferences preference.Client
	payments    payment.Client

	appURL   string
	currency string
}

func NewClient(accessToken, appURL string) (*Client, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Client{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		appURL:      appURL,
		currency:    "BRL",
	}, nil
}

// CreateCheckout cria a sessão de pagamento e devolve (id, url de redirect).
func (c *Client) CreateCheckout(
	ctx context.Context,
	reference string,
	title string,
	amount float64,
) (string, string, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      title,
				Quantity:   1,
				UnitPrice:  amount,
				CurrencyID: c.currency,
			},
		},
		ExternalReference: reference,
		BackURLs: &preference.BackURLsRequest{
			Success: fmt.Sprintf("%s/booking/success?ref=%s", c.appURL, reference),
			Pending: fmt.Sprintf("%s/booking/pending?ref=%s", c.appURL, reference),
			Failure: fmt.Sprintf("%s/booking/cancel?ref=%s", c.appURL, reference),
		},
		AutoReturn:      "approved",
		NotificationURL: fmt.Sprintf("%s/api/webhooks/payment", c.appURL),
	}

	pref, err := c.preferences.Create(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("create preference: %w", err)
	}

	return pref.ID, pref.InitPoint, nil
}

// GetPaymentReference consulta o pagamento no provedor e devolve a
// external_reference (= reference da reserva) e se foi aprovado.
func (c *Client) GetPaymentReference(
	ctx context.Context,
	paymentID int,
) (string, bool, error) {

	p, err := c.payments.Get(ctx, paymentID)
	if err != nil {
		return "", false, fmt.Errorf("get payment %d: %w", paymentID, err)
	}

	return p.ExternalReference, p.Status == "approved", nil
}
