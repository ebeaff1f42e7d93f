package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment status constants
const (
	PaymentStatusPending    = "pending"
	PaymentStatusSuccessful = "successful"
	PaymentStatusFailed     = "failed"
)

// Payment records a single charge attempt against an order. A payment is
// created pending, settled by the gateway inside the same transaction and
// never touched again. Method is the requested payment method key; Gateway
// is the key reported by the gateway that actually handled the charge.
type Payment struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	OrderID          uint              `gorm:"index;not null" json:"order_id"`
	PaymentReference string            `gorm:"uniqueIndex;not null" json:"payment_reference"`
	Status           string            `gorm:"default:pending" json:"status"`
	Method           string            `json:"method"`
	Gateway          string            `json:"gateway"`
	Amount           decimal.Decimal   `gorm:"type:numeric(10,2)" json:"amount"`
	Meta             datatypes.JSONMap `json:"meta,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
