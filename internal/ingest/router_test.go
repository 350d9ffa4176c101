package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"RenewalSync/internal/api/handlers"
	"RenewalSync/internal/shared/messaging"
	"RenewalSync/internal/shared/signature"
	"RenewalSync/internal/shared/webhook"
	"RenewalSync/pkg/health"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	published []messaging.Envelope
}

func (p *capturePublisher) Publish(_ context.Context, env messaging.Envelope) error {
	p.published = append(p.published, env)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func newTestEngine(pub messaging.Publisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewRouter(
		handlers.NewWebhookHandler(webhook.NewAsyncProcessor(pub)),
		"whsec",
		health.NewRegistry(),
	).SetUp(engine)
	return engine
}

func TestRouter_Webhook(t *testing.T) {
	body := `{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_1"}}}}`

	t.Run("queues signed delivery and answers 202", func(t *testing.T) {
		// given
		pub := &capturePublisher{}
		req := httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(body))
		req.Header.Set(signature.HeaderName, signature.Sign([]byte(body), "whsec"))
		req.Header.Set(handlers.EventIDHeader, "evt_1")
		w := httptest.NewRecorder()

		// when
		newTestEngine(pub).ServeHTTP(w, req)

		// then
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, pub.published, 1)
		assert.Equal(t, "pay_1", pub.published[0].Key)
		assert.Equal(t, "evt_1", pub.published[0].ProviderEventID)
	})

	t.Run("drops unsigned delivery", func(t *testing.T) {
		pub := &capturePublisher{}
		w := httptest.NewRecorder()

		newTestEngine(pub).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/webhooks/razorpay", strings.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, pub.published)
	})

	t.Run("serves liveness", func(t *testing.T) {
		w := httptest.NewRecorder()

		newTestEngine(&capturePublisher{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"service":"renewal-sync-ingest"`)
	})
}
