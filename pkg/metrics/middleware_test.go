package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRouteLabel(t *testing.T) {
	testCases := []struct {
		fullPath string
		want     string
	}{
		{fullPath: "/webhooks/razorpay", want: RouteWebhook},
		{fullPath: "/webhooks/deliveries", want: RouteDeliveries},
		{fullPath: "/health/live", want: RouteHealth},
		{fullPath: "/health/ready", want: RouteHealth},
		{fullPath: "/metrics", want: RouteMetrics},
		{fullPath: "", want: RouteUnknown},
		{fullPath: "/debug/:name", want: "/debug/:name"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, RouteLabel(tc.fullPath))
		})
	}
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(GinMiddleware())
	engine.POST("/webhooks/razorpay", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(RouteWebhook, http.MethodPost, "200"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(`{"event":"payment.failed"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(RouteWebhook, http.MethodPost, "200"))
	assert.Equal(t, before+1, after)
}

func TestGinMiddleware_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(GinMiddleware())

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(RouteUnknown, http.MethodGet, "404"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(RouteUnknown, http.MethodGet, "404"))
	assert.Equal(t, before+1, after)
}
