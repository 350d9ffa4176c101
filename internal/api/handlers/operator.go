package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// OperatorAuth guards operator-only routes with a static bearer token.
func OperatorAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		given, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" || subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			slog.WarnContext(c.Request.Context(), "Rejected operator request",
				"path", c.Request.URL.Path,
				"remote_ip", c.ClientIP())
			c.Header("WWW-Authenticate", `Bearer realm="operator"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "operator token required"})
			return
		}
		c.Next()
	}
}
