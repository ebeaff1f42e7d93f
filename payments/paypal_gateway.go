package payments

import (
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/google/uuid"
)

// PaypalGateway simulates a PayPal-style wallet provider.
type PaypalGateway struct{}

func NewPaypalGateway() *PaypalGateway {
	return &PaypalGateway{}
}

func (g *PaypalGateway) Key() string {
	return "paypal"
}

func (g *PaypalGateway) Charge(order *models.Order, payment *models.Payment, req ChargeRequest) (Result, error) {
	return Result{
		Status: resolveOutcome(req),
		Meta: map[string]interface{}{
			"provider":       "paypal",
			"transaction_id": uuid.New().String(),
			"amount":         order.Total.StringFixed(2),
		},
	}, nil
}
