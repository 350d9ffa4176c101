package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_NeedsPayment(t *testing.T) {
	testCases := []struct {
		name     string
		order    Order
		expected bool
	}{
		{
			name:     "pending order with total",
			order:    Order{Status: StatusPending, Total: decimal.RequireFromString("10.00")},
			expected: true,
		},
		{
			name:     "failed order can be paid again",
			order:    Order{Status: StatusFailed, Total: decimal.RequireFromString("10.00")},
			expected: true,
		},
		{
			name:     "processing order is settled",
			order:    Order{Status: StatusProcessing, Total: decimal.RequireFromString("10.00")},
			expected: false,
		},
		{
			name:     "completed order is settled",
			order:    Order{Status: StatusCompleted, Total: decimal.RequireFromString("10.00")},
			expected: false,
		},
		{
			name:     "free order never needs payment",
			order:    Order{Status: StatusPending, Total: decimal.Zero},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.order.NeedsPayment())
		})
	}
}

func TestOrder_AmountAsInteger(t *testing.T) {
	testCases := []struct {
		total    string
		expected int64
	}{
		{total: "499.00", expected: 49900},
		{total: "0.10", expected: 10},
		{total: "19.995", expected: 2000},
		{total: "1234.56", expected: 123456},
	}

	for _, tc := range testCases {
		t.Run(tc.total, func(t *testing.T) {
			o := Order{Total: decimal.RequireFromString(tc.total)}

			assert.Equal(t, tc.expected, o.AmountAsInteger())
		})
	}
}

func TestPaymentUpdate_Status(t *testing.T) {
	success := PaymentUpdate{Success: true, PaymentID: "pay_1"}
	failure := PaymentUpdate{Success: false, Message: FailedPaymentMessage}

	assert.Equal(t, StatusProcessing, success.Status())
	assert.Equal(t, "Payment successful. Gateway payment id: pay_1", success.Note())
	assert.Equal(t, StatusFailed, failure.Status())
	assert.Equal(t, FailedPaymentMessage, failure.Note())
}
