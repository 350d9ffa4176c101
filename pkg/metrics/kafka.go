package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	KafkaProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "kafka",
			Name:      "message_processing_duration_seconds",
			Help:      "Queued webhook processing duration in seconds, gateway calls included",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"topic", "consumer_group", "status"},
	)

	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "kafka",
			Name:      "messages_processed_total",
			Help:      "Total number of queued webhook deliveries processed",
		},
		[]string{"topic", "consumer_group", "status"},
	)

	// KafkaDeadLettered counts failed deliveries handed to the DLQ. A "publish_failed"
	// result means the delivery was dropped: the offset is committed either way.
	KafkaDeadLettered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "kafka",
			Name:      "dead_lettered_total",
			Help:      "Failed webhook deliveries sent to the dead letter topic",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(KafkaProcessingDuration, KafkaMessagesProcessed, KafkaDeadLettered)
}
