package subscription

import "context"

//go:generate mockgen -source repo.go -destination mock_repo.go -package subscription

type SubscriptionRepo interface {
	TxSubscriptionRepo
	InTransaction(ctx context.Context, fn func(repo TxSubscriptionRepo) error) error
}

type TxSubscriptionRepo interface {
	SubscriptionsForOrder(ctx context.Context, orderID string) ([]Subscription, error)

	// PrepareRenewal opens a pending renewal slot and puts the subscription on hold.
	PrepareRenewal(ctx context.Context, subscriptionID string) (Renewal, error)
	// MarkPaid settles the renewal, bumps the completed payment count and reactivates the subscription.
	MarkPaid(ctx context.Context, renewal Renewal, paymentID string) error
	// MarkFailed records a failed renewal for every subscription attached to the order.
	MarkFailed(ctx context.Context, orderID string) error
}
