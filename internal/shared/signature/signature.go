// Package signature verifies gateway webhook signatures.
package signature

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	HeaderName = "X-Razorpay-Signature"

	// RawBodyKey is the gin context key holding the verified request body.
	RawBodyKey = "webhook.raw_body"

	// MaxBodyBytes caps how much of an unverified body is read.
	MaxBodyBytes = 1 << 20
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Sign returns the hex encoded HMAC-SHA256 of payload.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a hex encoded HMAC-SHA256 signature of payload.
func Verify(payload []byte, signature, secret string) error {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return ErrInvalidSignature
	}

	expected, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return ErrInvalidSignature
	}
	return nil
}

// Middleware rejects requests whose body does not match the signature header.
// The verified body is stored under RawBodyKey and left readable on the request.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"message": "request body too large"})
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "unable to read body"})
			return
		}

		if err := Verify(body, c.GetHeader(HeaderName), secret); err != nil {
			slog.WarnContext(c.Request.Context(), "Rejected webhook with invalid signature",
				"path", c.Request.URL.Path,
				"remote_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Set(RawBodyKey, body)
		c.Next()
	}
}

// RawBody returns the body stored by Middleware, reading the request when absent.
func RawBody(c *gin.Context) ([]byte, error) {
	if v, ok := c.Get(RawBodyKey); ok {
		if b, ok := v.([]byte); ok {
			return b, nil
		}
	}
	return io.ReadAll(c.Request.Body)
}
