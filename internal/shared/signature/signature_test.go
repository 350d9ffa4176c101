package signature

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "whsec"

func TestVerify(t *testing.T) {
	payload := []byte(`{"event":"payment.authorized"}`)

	t.Run("accepts matching signature", func(t *testing.T) {
		assert.NoError(t, Verify(payload, Sign(payload, secret), secret))
	})

	t.Run("accepts upper case hex", func(t *testing.T) {
		assert.NoError(t, Verify(payload, strings.ToUpper(Sign(payload, secret)), secret))
	})

	tests := []struct {
		name      string
		signature string
		secret    string
	}{
		{name: "empty signature", signature: "", secret: secret},
		{name: "empty secret", signature: Sign(payload, secret), secret: ""},
		{name: "not hex", signature: "zz", secret: secret},
		{name: "wrong secret", signature: Sign(payload, "other"), secret: secret},
		{name: "tampered payload", signature: Sign([]byte(`{}`), secret), secret: secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Verify(payload, tt.signature, tt.secret), ErrInvalidSignature)
		})
	}
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/webhooks/razorpay", Middleware(secret), func(c *gin.Context) {
		stored, err := RawBody(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		again, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{"stored": string(stored), "body": string(again)})
	})
	return engine
}

func TestMiddleware(t *testing.T) {
	body := `{"event":"payment.failed"}`

	t.Run("passes verified body downstream", func(t *testing.T) {
		// given
		req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(body))
		req.Header.Set(HeaderName, Sign([]byte(body), secret))
		w := httptest.NewRecorder()

		// when
		newEngine().ServeHTTP(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"stored":`+quote(body)+`,"body":`+quote(body)+`}`, w.Body.String())
	})

	t.Run("rejects bad signature with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(body))
		req.Header.Set(HeaderName, Sign([]byte(body), "wrong"))
		w := httptest.NewRecorder()

		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), ErrInvalidSignature.Error())
	})

	t.Run("rejects missing signature with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(body))
		w := httptest.NewRecorder()

		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects oversized body with 413 before verifying", func(t *testing.T) {
		// given
		oversized := `{"event":"payment.failed","padding":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(oversized))
		req.Header.Set(HeaderName, Sign([]byte(oversized), secret))
		w := httptest.NewRecorder()

		// when
		newEngine().ServeHTTP(w, req)

		// then
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "request body too large")
	})
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
