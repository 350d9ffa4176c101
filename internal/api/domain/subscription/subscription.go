package subscription

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on-hold"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Subscription is the platform-side record of a recurring order.
type Subscription struct {
	ID                    string
	OrderID               string
	Status                Status
	CompletedPaymentCount int
	FailedPaymentCount    int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type RenewalStatus string

const (
	RenewalPending RenewalStatus = "pending"
	RenewalPaid    RenewalStatus = "paid"
	RenewalFailed  RenewalStatus = "failed"
)

// Renewal is one billing cycle of a subscription.
type Renewal struct {
	ID             string
	SubscriptionID string
	Status         RenewalStatus
	PaymentID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
