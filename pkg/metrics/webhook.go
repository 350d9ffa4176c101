package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Webhook deliveries by event name and result",
		},
		[]string{"event", "result"},
	)

	// RenewalMismatchTotal counts renewals skipped because the gateway paid_count
	// was neither the next expected value nor the fully-paid total.
	RenewalMismatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "webhook",
			Name:      "renewal_mismatch_total",
			Help:      "Subscription renewals ignored because of a paid count mismatch",
		},
		[]string{"event"},
	)

	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Payment gateway API call latency in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation", "outcome"},
	)
)

func init() {
	Registry.MustRegister(WebhookEventsTotal, RenewalMismatchTotal, GatewayRequestDuration)
}
