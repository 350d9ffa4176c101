package subscription

import "errors"

var (
	// ErrNotFound is returned when no subscription is attached to an order
	ErrNotFound = errors.New("subscription not found")

	// ErrNoPendingRenewal is returned when a renewal slot cannot be paid because it was never prepared
	ErrNoPendingRenewal = errors.New("no pending renewal")
)
