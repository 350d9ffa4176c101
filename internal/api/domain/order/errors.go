package order

import "errors"

// ErrNotFound is returned when order is not found
var ErrNotFound = errors.New("order not found")
