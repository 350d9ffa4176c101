package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds a whole readiness round, gateway ping included.
const DefaultTimeout = 5 * time.Second

type Status string

const (
	StatusUp Status = "up"
	// StatusDegraded means only optional dependencies are failing; the service still takes traffic.
	StatusDegraded Status = "degraded"
	StatusDown     Status = "down"
)

// Result is the outcome of a single health check.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker is the interface for health check implementations.
type Checker interface {
	// Name returns the name of the component being checked.
	Name() string
	// Check performs the health check and returns the result.
	Check(ctx context.Context) Result
}

// Optional marks a checker whose failure degrades readiness instead of failing it.
// Used for dependencies whose outage the gateway rides out by redelivering.
func Optional(c Checker) Checker {
	return optionalChecker{Checker: c}
}

type optionalChecker struct {
	Checker
}

func isOptional(c Checker) bool {
	_, ok := c.(optionalChecker)
	return ok
}
