package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_HasPayments(t *testing.T) {
	order := Order{}
	assert.False(t, order.HasPayments())

	// Any payment row locks the order's items, whatever its status.
	order.Payments = []Payment{{Status: PaymentStatusFailed}}
	assert.True(t, order.HasPayments())

	order.Payments = []Payment{{Status: PaymentStatusPending}}
	assert.True(t, order.HasPayments())
}

func TestOrder_HasSuccessfulPayment(t *testing.T) {
	order := Order{Payments: []Payment{
		{Status: PaymentStatusFailed},
		{Status: PaymentStatusPending},
	}}
	assert.False(t, order.HasSuccessfulPayment())

	order.Payments = append(order.Payments, Payment{Status: PaymentStatusSuccessful})
	assert.True(t, order.HasSuccessfulPayment())
}

func TestOrder_AcceptsPayment(t *testing.T) {
	cases := []struct {
		name     string
		order    Order
		accepted bool
	}{
		{"pending order", Order{Status: OrderStatusPending}, false},
		{"cancelled order", Order{Status: OrderStatusCancelled}, false},
		{"confirmed order", Order{Status: OrderStatusConfirmed}, true},
		{
			"confirmed with failed payment",
			Order{Status: OrderStatusConfirmed, Payments: []Payment{{Status: PaymentStatusFailed}}},
			true,
		},
		{
			"confirmed already paid",
			Order{Status: OrderStatusConfirmed, Payments: []Payment{{Status: PaymentStatusSuccessful}}},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.accepted, tc.order.AcceptsPayment())
		})
	}
}
