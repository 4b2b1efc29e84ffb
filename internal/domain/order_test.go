package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusAwaitingPayment, OrderStatusPaid, true},
		{OrderStatusAwaitingPayment, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusCompleted, true},

		{OrderStatusAwaitingPayment, OrderStatusCompleted, false}, // no skipping payment
		{OrderStatusPaid, OrderStatusCancelled, false},            // paid orders are not cancellable
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCompleted, OrderStatusPaid, false},
		{OrderStatusCancelled, OrderStatusPaid, false},
		{OrderStatusCancelled, OrderStatusAwaitingPayment, false},
		{OrderStatusPaid, OrderStatusAwaitingPayment, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCancellationOnlyFromInitialStatus(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled} {
		t.Run(string(from), func(t *testing.T) {
			err := ValidateTransition(from, OrderStatusCancelled)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
	assert.NoError(t, ValidateTransition(OrderStatusAwaitingPayment, OrderStatusCancelled))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	all := []OrderStatus{OrderStatusAwaitingPayment, OrderStatusPaid, OrderStatusCompleted, OrderStatusCancelled}
	for _, to := range all {
		assert.False(t, CanTransition(OrderStatusCancelled, to), "cancelled -> %s", to)
		assert.False(t, CanTransition(OrderStatusCompleted, to), "completed -> %s", to)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("PAID")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusPaid, status)

	_, err = ParseOrderStatus("Lunas")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLineItemSubtotal(t *testing.T) {
	li := OrderLineItem{Quantity: 3, UnitPrice: 10000}
	assert.Equal(t, int64(30000), li.Subtotal())
}
