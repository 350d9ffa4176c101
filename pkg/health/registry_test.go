package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name   string
	result Result
}

func (s stubChecker) Name() string                   { return s.name }
func (s stubChecker) Check(_ context.Context) Result { return s.result }

func TestRegistry_CheckAll(t *testing.T) {
	t.Run("no checkers is up", func(t *testing.T) {
		resp := NewRegistry().CheckAll(context.Background())

		assert.Equal(t, StatusUp, resp.Status)
		assert.Empty(t, resp.Checks)
	})

	t.Run("one failing checker marks down", func(t *testing.T) {
		registry := NewRegistry(
			stubChecker{name: "postgres", result: Result{Status: StatusUp}},
			stubChecker{name: "kafka", result: Result{Status: StatusDown, Message: "all brokers unreachable"}},
		)

		resp := registry.CheckAll(context.Background())

		assert.Equal(t, StatusDown, resp.Status)
		require.Len(t, resp.Checks, 2)
		assert.Equal(t, "postgres", resp.Checks[0].Name)
		assert.Equal(t, "all brokers unreachable", resp.Checks[1].Message)
	})

	t.Run("failing optional checker only degrades", func(t *testing.T) {
		registry := NewRegistry(
			stubChecker{name: "postgres", result: Result{Status: StatusUp}},
			Optional(stubChecker{name: "razorpay", result: Result{Status: StatusDown, Message: "gateway status 503"}}),
		)

		resp := registry.CheckAll(context.Background())

		assert.Equal(t, StatusDegraded, resp.Status)
		require.Len(t, resp.Checks, 2)
		assert.Equal(t, "razorpay", resp.Checks[1].Name)
		assert.True(t, resp.Checks[1].Optional)
		assert.False(t, resp.Checks[0].Optional)
	})

	t.Run("required failure outranks degraded", func(t *testing.T) {
		registry := NewRegistry(
			Optional(stubChecker{name: "razorpay", result: Result{Status: StatusDown}}),
			stubChecker{name: "postgres", result: Result{Status: StatusDown}},
		)

		resp := registry.CheckAll(context.Background())

		assert.Equal(t, StatusDown, resp.Status)
	})
}

func TestReadinessHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		registry   *Registry
		wantStatus int
	}{
		{
			name:       "ready",
			registry:   NewRegistry(stubChecker{name: "postgres", result: Result{Status: StatusUp}}),
			wantStatus: http.StatusOK,
		},
		{
			name:       "degraded stays ready",
			registry:   NewRegistry(Optional(stubChecker{name: "razorpay", result: Result{Status: StatusDown}})),
			wantStatus: http.StatusOK,
		},
		{
			name:       "not ready",
			registry:   NewRegistry(stubChecker{name: "postgres", result: Result{Status: StatusDown}}),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health/ready", ReadinessHandler(tc.registry, DefaultTimeout))

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Len(t, body.Checks, 1)
		})
	}
}

func TestLivenessHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/health/live", LivenessHandler("renewal-sync-api"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"up","service":"renewal-sync-api"}`, w.Body.String())
}
