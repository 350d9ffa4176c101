package gateway

import "context"

//go:generate mockgen -source port.go -destination mock_port.go -package gateway

// Gateway is the subset of the payment gateway API the webhook handler relies on.
type Gateway interface {
	FetchPayment(ctx context.Context, paymentID string) (Payment, error)
	CapturePayment(ctx context.Context, req CaptureRequest) (Payment, error)
	FetchInvoice(ctx context.Context, invoiceID string) (Invoice, error)
	FetchSubscription(ctx context.Context, subscriptionID string) (Subscription, error)
}

type PaymentStatus string

const (
	PaymentCreated    PaymentStatus = "created"
	PaymentAuthorized PaymentStatus = "authorized"
	PaymentCaptured   PaymentStatus = "captured"
	PaymentFailed     PaymentStatus = "failed"
)

type Payment struct {
	ID        string
	Status    PaymentStatus
	Amount    int64
	Currency  string
	InvoiceID string
	Notes     Notes
}

// CaptureRequest captures an authorized payment. Amount is in currency minor units.
type CaptureRequest struct {
	PaymentID string
	Amount    int64
	Currency  string
}

type Invoice struct {
	ID             string
	SubscriptionID string
	Status         string
}

type Subscription struct {
	ID         string
	Status     string
	TotalCount int
	PaidCount  int
	Notes      Notes
}
