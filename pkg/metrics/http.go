package metrics

import "github.com/prometheus/client_golang/prometheus"

// Route groups used as the "route" label. Requests that matched no route
// are all labelled RouteUnknown.
const (
	RouteWebhook    = "webhook"
	RouteDeliveries = "deliveries"
	RouteHealth     = "health"
	RouteMetrics    = "metrics"
	RouteUnknown    = "unknown"
)

var routeGroups = map[string]string{
	"/webhooks/razorpay":   RouteWebhook,
	"/webhooks/deliveries": RouteDeliveries,
	"/health/live":         RouteHealth,
	"/health/ready":        RouteHealth,
	"/metrics":             RouteMetrics,
}

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds by route group",
			// Sync webhooks wait on gateway calls, up to HTTP_GATEWAY_CLIENT_TIMEOUT.
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"route", "method", "status_code"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route group",
		},
		[]string{"route", "method", "status_code"},
	)

	// WebhookRequestBytes tracks delivery body sizes so the signature body limit can be tuned.
	WebhookRequestBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "webhook_request_bytes",
			Help:      "Size of webhook request bodies in bytes",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 7),
		},
	)
)

// RouteLabel maps a gin route template to its route group.
func RouteLabel(fullPath string) string {
	if group, ok := routeGroups[fullPath]; ok {
		return group
	}
	if fullPath == "" {
		return RouteUnknown
	}
	return fullPath
}

func init() {
	Registry.MustRegister(HTTPRequestDuration, HTTPRequestsTotal, WebhookRequestBytes)
}
