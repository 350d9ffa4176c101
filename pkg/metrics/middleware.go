package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware records request count and latency per route group.
// Webhook body sizes are observed separately for the webhook group.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := RouteLabel(c.FullPath())
		status := strconv.Itoa(c.Writer.Status())

		HTTPRequestDuration.WithLabelValues(route, c.Request.Method, status).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, status).Inc()

		if route == RouteWebhook && c.Request.ContentLength >= 0 {
			WebhookRequestBytes.Observe(float64(c.Request.ContentLength))
		}
	}
}
