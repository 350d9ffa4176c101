package razorpay

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the gateway could not be reached or answered with a 5xx.
var ErrUnavailable = errors.New("razorpay unavailable")

// APIError is a non-2xx gateway response. Its text is the gateway's own description
// so it can be passed through to operators verbatim.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return fmt.Sprintf("razorpay responded with status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode >= 500 {
		return ErrUnavailable
	}
	return nil
}
