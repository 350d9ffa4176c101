package api

import (
	"log/slog"

	"RenewalSync/internal/api/handlers"
	"RenewalSync/internal/shared/signature"
	"RenewalSync/pkg/health"
	"RenewalSync/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "renewal-sync-api"

type Router struct {
	webhook        *handlers.WebhookHandler
	deliveries     *handlers.DeliveryHandler
	webhookSecret  string
	operatorToken  string
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler(serviceName))
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	engine.POST("/webhooks/razorpay", signature.Middleware(r.webhookSecret), r.webhook.Webhook)

	// The delivery log holds raw gateway payloads; it is only exposed to operators.
	if r.operatorToken == "" {
		slog.Warn("OPERATOR_TOKEN not set, delivery listing disabled")
		return
	}
	engine.GET("/webhooks/deliveries", handlers.OperatorAuth(r.operatorToken), r.deliveries.List)
}

func NewRouter(
	webhook *handlers.WebhookHandler,
	deliveries *handlers.DeliveryHandler,
	webhookSecret string,
	operatorToken string,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		webhook:        webhook,
		deliveries:     deliveries,
		webhookSecret:  webhookSecret,
		operatorToken:  operatorToken,
		healthRegistry: healthRegistry,
	}
}
