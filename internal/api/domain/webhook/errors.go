package webhook

import (
	"errors"
	"fmt"
)

var (
	// ErrGatewayFetch is returned when the gateway could not serve a payment, invoice or capture call
	ErrGatewayFetch = errors.New("gateway request failed")

	// ErrConfiguration is returned when platform records are in a state the handler refuses to touch
	ErrConfiguration = errors.New("configuration error")

	// ErrMissingField is returned when a required payload field is absent
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidPayload is returned when the webhook body is not valid JSON
	ErrInvalidPayload = errors.New("invalid webhook payload")
)

func missingField(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}

// SubscriptionFetchError carries the gateway's reason for failing a subscription lookup.
// Its text is returned to the webhook sender.
type SubscriptionFetchError struct {
	SubscriptionID string
	Err            error
}

func (e *SubscriptionFetchError) Error() string {
	return fmt.Sprintf("Subscription fetch failed with message '%s'", e.Err.Error())
}

func (e *SubscriptionFetchError) Unwrap() error {
	return e.Err
}
