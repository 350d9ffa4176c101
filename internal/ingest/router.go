package ingest

import (
	"RenewalSync/internal/api/handlers"
	"RenewalSync/internal/shared/signature"
	"RenewalSync/pkg/health"
	"RenewalSync/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "renewal-sync-ingest"

type Router struct {
	webhook        *handlers.WebhookHandler
	webhookSecret  string
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler(serviceName))
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Webhook endpoint only
	engine.POST("/webhooks/razorpay", signature.Middleware(r.webhookSecret), r.webhook.Webhook)
}

func NewRouter(webhook *handlers.WebhookHandler, webhookSecret string, healthRegistry *health.Registry) *Router {
	return &Router{
		webhook:        webhook,
		webhookSecret:  webhookSecret,
		healthRegistry: healthRegistry,
	}
}
