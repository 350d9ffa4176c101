package messaging

import (
	"context"
	"time"

	"RenewalSync/pkg/correlation"
	"RenewalSync/pkg/metrics"
)

const dlqPublishTimeout = 5 * time.Second

// DLQPublisher can publish failed messages to a dead letter queue.
type DLQPublisher interface {
	PublishToDLQ(ctx context.Context, key, value []byte, err error) error
}

// WithDLQ sends failed messages straight to the DLQ. There is no retry stage:
// webhook redelivery is left to the sender. Metrics must wrap the inner
// handler, since WithDLQ always reports success to the consumer.
func WithDLQ(handler MessageHandler, dlq DLQPublisher) MessageHandler {
	return func(ctx context.Context, key, value []byte) error {
		err := handler(ctx, key, value)
		if err == nil {
			return nil
		}

		// Main ctx may already be cancelled during shutdown.
		dlqCtx, cancel := context.WithTimeout(correlation.WithID(context.Background(), correlation.FromContext(ctx)), dlqPublishTimeout)
		defer cancel()

		result := "published"
		if pubErr := dlq.PublishToDLQ(dlqCtx, key, value, err); pubErr != nil {
			// Logged by the publisher; the offset is still committed.
			result = "publish_failed"
		}
		metrics.KafkaDeadLettered.WithLabelValues(result).Inc()
		return nil
	}
}

// WithMetrics records processing duration and outcome per topic and consumer group.
func WithMetrics(topic, group string, handler MessageHandler) MessageHandler {
	return func(ctx context.Context, key, value []byte) error {
		start := time.Now()
		err := handler(ctx, key, value)

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.KafkaProcessingDuration.WithLabelValues(topic, group, status).Observe(time.Since(start).Seconds())
		metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, status).Inc()
		return err
	}
}
