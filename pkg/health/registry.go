package health

import (
	"context"
	"sync"
	"time"
)

// Registry holds the dependency checks behind /health/ready.
type Registry struct {
	checkers []Checker
}

func NewRegistry(checkers ...Checker) *Registry {
	return &Registry{checkers: checkers}
}

// CheckResult is the result of a single named check.
type CheckResult struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Message   string `json:"message,omitempty"`
	Optional  bool   `json:"optional,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// ReadinessResponse is the aggregated readiness check response.
type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs all registered checkers in parallel. Any required check down
// makes the service down; optional checks down only degrade it.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	if len(r.checkers) == 0 {
		return ReadinessResponse{Status: StatusUp}
	}

	results := make([]CheckResult, len(r.checkers))
	var wg sync.WaitGroup

	for i, checker := range r.checkers {
		wg.Add(1)
		go func(idx int, c Checker) {
			defer wg.Done()
			start := time.Now()
			res := c.Check(ctx)
			results[idx] = CheckResult{
				Name:      c.Name(),
				Status:    res.Status,
				Message:   res.Message,
				Optional:  isOptional(c),
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}(i, checker)
	}

	wg.Wait()

	return ReadinessResponse{Status: overallStatus(results), Checks: results}
}

func overallStatus(results []CheckResult) Status {
	overall := StatusUp
	for _, res := range results {
		if res.Status != StatusDown {
			continue
		}
		if !res.Optional {
			return StatusDown
		}
		overall = StatusDegraded
	}
	return overall
}
