package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	Status          string          `gorm:"default:pending" json:"status"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2)" json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments        []Payment       `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index;not null" json:"order_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(10,2)" json:"line_total"`
}

// HasPayments reports whether any payment row exists for the order,
// regardless of status. Items are locked and deletion is blocked once
// the first payment has been recorded. Payments must be preloaded.
func (o *Order) HasPayments() bool {
	return len(o.Payments) > 0
}

// HasSuccessfulPayment reports whether the order has already been paid.
// Payments must be preloaded.
func (o *Order) HasSuccessfulPayment() bool {
	for _, p := range o.Payments {
		if p.Status == PaymentStatusSuccessful {
			return true
		}
	}
	return false
}

// AcceptsPayment reports whether a new payment may be processed for
// the order: only confirmed orders without a successful payment qualify.
func (o *Order) AcceptsPayment() bool {
	return o.Status == OrderStatusConfirmed && !o.HasSuccessfulPayment()
}
