package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusOnHold     Status = "on-hold"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// FailedPaymentMessage is attached to an order whose gateway payment did not go through.
const FailedPaymentMessage = "The payment has failed."

var minorUnitsPerMajor = decimal.NewFromInt(100)

type Order struct {
	ID              string
	Status          Status
	Total           decimal.Decimal
	Currency        string
	PaymentID       string
	PaidFromWebhook bool
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NeedsPayment reports whether the order is still waiting for a successful payment.
func (o Order) NeedsPayment() bool {
	if o.Status != StatusPending && o.Status != StatusFailed {
		return false
	}
	return o.Total.IsPositive()
}

// AmountAsInteger returns the order total in currency minor units.
func (o Order) AmountAsInteger() int64 {
	return o.Total.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// PaymentUpdate is the result of reconciling an order against its gateway payment.
type PaymentUpdate struct {
	OrderID     string
	Success     bool
	Message     string
	PaymentID   string
	FromWebhook bool
}

func (u PaymentUpdate) Status() Status {
	if u.Success {
		return StatusProcessing
	}
	return StatusFailed
}

// Note is the order note written alongside the status change.
func (u PaymentUpdate) Note() string {
	if u.Success {
		return "Payment successful. Gateway payment id: " + u.PaymentID
	}
	return u.Message
}
