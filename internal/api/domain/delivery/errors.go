package delivery

import "errors"

// ErrInvalidQuery is returned when a delivery listing query cannot be served
var ErrInvalidQuery = errors.New("invalid deliveries query")
