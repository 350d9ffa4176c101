package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LivenessHandler answers 200 while the process runs, naming the service so
// the API and ingest deployments can be told apart behind one ingress.
func LivenessHandler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": StatusUp, "service": service})
	}
}

// ReadinessHandler answers 503 only when a required dependency is down.
// A degraded service stays in rotation with 200.
func ReadinessHandler(registry *Registry, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		response := registry.CheckAll(ctx)

		status := http.StatusOK
		if response.Status == StatusDown {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, response)
	}
}
