package payments

import (
	"testing"

	"github.com/Mina-Sayed/tocaan-payment-api/config"
	"github.com/Mina-Sayed/tocaan-payment-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setForcedOutcome(t *testing.T, allowed bool) {
	t.Helper()
	previous := config.AppConfig
	config.AppConfig = &config.Config{AllowForcedOutcome: allowed}
	t.Cleanup(func() { config.AppConfig = previous })
}

func testOrder() *models.Order {
	return &models.Order{
		ID:     1,
		Status: models.OrderStatusConfirmed,
		Total:  decimal.RequireFromString("42.00"),
	}
}

func TestGateway_ChargeDefaultsToSuccessful(t *testing.T) {
	setForcedOutcome(t, true)

	for _, gateway := range []Gateway{NewCreditCardGateway(), NewPaypalGateway()} {
		result, err := gateway.Charge(testOrder(), &models.Payment{}, ChargeRequest{Method: gateway.Key()})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusSuccessful, result.Status)
	}
}

func TestGateway_ChargeHonoursForcedOutcome(t *testing.T) {
	setForcedOutcome(t, true)

	gateway := NewPaypalGateway()

	result, err := gateway.Charge(testOrder(), &models.Payment{}, ChargeRequest{
		Method:          "paypal",
		SimulateOutcome: models.PaymentStatusFailed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, result.Status)

	result, err = gateway.Charge(testOrder(), &models.Payment{}, ChargeRequest{
		Method:          "paypal",
		SimulateOutcome: models.PaymentStatusSuccessful,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccessful, result.Status)
}

func TestGateway_ForcedOutcomeIgnoredWhenDisabled(t *testing.T) {
	setForcedOutcome(t, false)

	gateway := NewCreditCardGateway()

	result, err := gateway.Charge(testOrder(), &models.Payment{}, ChargeRequest{
		Method:          "credit_card",
		SimulateOutcome: models.PaymentStatusFailed,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccessful, result.Status)
}

func TestGateway_InvalidForcedOutcomeIgnored(t *testing.T) {
	setForcedOutcome(t, true)

	gateway := NewCreditCardGateway()

	result, err := gateway.Charge(testOrder(), &models.Payment{}, ChargeRequest{
		Method:          "credit_card",
		SimulateOutcome: "refunded",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccessful, result.Status)
}

func TestGateway_ChargeStampsMeta(t *testing.T) {
	setForcedOutcome(t, true)

	order := testOrder()

	cases := []struct {
		gateway  Gateway
		provider string
	}{
		{NewCreditCardGateway(), "credit_card"},
		{NewPaypalGateway(), "paypal"},
	}

	for _, tc := range cases {
		result, err := tc.gateway.Charge(order, &models.Payment{}, ChargeRequest{Method: tc.provider})
		require.NoError(t, err)
		assert.Equal(t, tc.provider, result.Meta["provider"])
		assert.Equal(t, "42.00", result.Meta["amount"])
		assert.NotEmpty(t, result.Meta["transaction_id"])
	}
}

func TestGateway_TransactionIDsAreUnique(t *testing.T) {
	setForcedOutcome(t, true)

	gateway := NewPaypalGateway()
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		result, err := gateway.Charge(testOrder(), &models.Payment{}, ChargeRequest{Method: "paypal"})
		require.NoError(t, err)

		id, ok := result.Meta["transaction_id"].(string)
		require.True(t, ok)
		assert.False(t, seen[id], "transaction id %s repeated", id)
		seen[id] = true
	}
}
