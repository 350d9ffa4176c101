package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"RenewalSync/internal/shared/messaging"
	"RenewalSync/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

const commitTimeout = 5 * time.Second

// Consumer implements messaging.Worker on top of a consumer-group reader.
type Consumer struct {
	reader *kafka.Reader
}

// NewConsumer creates a consumer for one topic within groupID.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{reader: kafka.NewReader(readerConfig(brokers, topic, groupID))}
}

func readerConfig(brokers []string, topic, groupID string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:          brokers,
		Topic:            topic,
		GroupID:          groupID,
		MinBytes:         1,
		MaxBytes:         10e6,
		CommitInterval:   0, // synchronous commits
		StartOffset:      kafka.FirstOffset,
		MaxWait:          500 * time.Millisecond,
		RebalanceTimeout: 5 * time.Second,
	}
}

// Start fetches deliveries one at a time and hands them to handler.
// Blocks until ctx is cancelled or the reader fails.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	cfg := c.reader.Config()
	slog.Info("Consumer started", "topic", cfg.Topic, "group_id", cfg.GroupID)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				slog.Info("Consumer stopped", "topic", cfg.Topic)
				return nil
			}
			slog.Error("Failed to fetch message", "topic", cfg.Topic, slog.Any("error", err))
			return err
		}

		msgCtx := extractCorrelationID(ctx, msg.Headers)
		attrs := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
		}

		slog.DebugContext(msgCtx, "Message received", attrs...)

		if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
			// Left uncommitted; picked up again after restart or rebalance.
			slog.ErrorContext(msgCtx, "Handler error, message not committed", append(attrs, slog.Any("error", err))...)
			continue
		}

		// Detached from ctx so a processed message still commits during shutdown.
		commitCtx, cancel := context.WithTimeout(context.Background(), commitTimeout)
		err = c.reader.CommitMessages(commitCtx, msg)
		cancel()
		if err != nil {
			slog.ErrorContext(msgCtx, "Failed to commit message", append(attrs, slog.Any("error", err))...)
			continue
		}

		slog.DebugContext(msgCtx, "Message committed", attrs...)
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	cfg := c.reader.Config()
	slog.Info("Closing consumer", "topic", cfg.Topic, "group_id", cfg.GroupID)
	return c.reader.Close()
}

// extractCorrelationID restores the correlation ID set by the publisher.
// Messages without one get a fresh ID.
func extractCorrelationID(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == correlation.KafkaHeaderName {
			return correlation.WithID(ctx, string(h.Value))
		}
	}
	return correlation.WithID(ctx, correlation.NewID())
}
