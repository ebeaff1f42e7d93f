package payments

import (
	"github.com/Mina-Sayed/tocaan-payment-api/config"
	"github.com/Mina-Sayed/tocaan-payment-api/models"
)

// ChargeRequest is the validated payment payload forwarded to a gateway.
type ChargeRequest struct {
	Method          string `json:"method" binding:"required"`
	SimulateOutcome string `json:"simulate_outcome" binding:"omitempty,oneof=successful failed"`
}

// Result is the outcome a gateway reports for a single charge. Status is
// always successful or failed; Meta carries provider-specific detail such
// as the transaction id and the echoed amount.
type Result struct {
	Status string
	Meta   map[string]interface{}
}

// Gateway is the capability every payment provider implements. Charge is
// invoked inside the payment transaction; returning an error rolls the
// whole payment back.
type Gateway interface {
	Key() string
	Charge(order *models.Order, payment *models.Payment, req ChargeRequest) (Result, error)
}

// resolveOutcome applies the simulation policy shared by all gateways:
// honour a forced simulate_outcome when the process-wide flag allows it,
// otherwise every simulated charge succeeds.
func resolveOutcome(req ChargeRequest) string {
	forced := req.SimulateOutcome
	if config.ForcedOutcomeAllowed() &&
		(forced == models.PaymentStatusSuccessful || forced == models.PaymentStatusFailed) {
		return forced
	}
	return models.PaymentStatusSuccessful
}
