package logger

import (
	"log/slog"
	"time"

	"RenewalSync/pkg/correlation"

	"github.com/gin-gonic/gin"
)

// CorrelationMiddleware extracts X-Correlation-ID from request header or generates a new one.
// It stores the ID in the request context and adds it to the response header.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, corrID := correlation.WithIDOrNew(c.Request.Context(), c.GetHeader(correlation.HeaderName))
		c.Request = c.Request.WithContext(ctx)

		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

// RequestLogger logs one line per HTTP request. Server errors are logged at error level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		slog.Log(c.Request.Context(), level, "HTTP Request", attrs...)
	}
}
