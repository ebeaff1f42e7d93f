package payments

import (
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/google/uuid"
)

// CreditCardGateway simulates a card acquirer. No external call is made;
// the outcome follows the shared simulation policy.
type CreditCardGateway struct{}

func NewCreditCardGateway() *CreditCardGateway {
	return &CreditCardGateway{}
}

func (g *CreditCardGateway) Key() string {
	return "credit_card"
}

func (g *CreditCardGateway) Charge(order *models.Order, payment *models.Payment, req ChargeRequest) (Result, error) {
	return Result{
		Status: resolveOutcome(req),
		Meta: map[string]interface{}{
			"provider":       "credit_card",
			"transaction_id": uuid.New().String(),
			"amount":         order.Total.StringFixed(2),
		},
	}, nil
}
