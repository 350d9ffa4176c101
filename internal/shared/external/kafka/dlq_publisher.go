package kafka

import (
	"context"
	"log/slog"
	"time"

	"RenewalSync/pkg/correlation"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderError    = "error"
	HeaderFailedAt = "failed_at"
)

// DLQPublisher parks deliveries that could not be reconciled.
type DLQPublisher struct {
	writer *kafka.Writer
}

func NewDLQPublisher(brokers []string, dlqTopic string) *DLQPublisher {
	return &DLQPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  dlqTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// PublishToDLQ writes the original key and value with the failure reason in headers.
func (p *DLQPublisher) PublishToDLQ(ctx context.Context, key, value []byte, err error) error {
	msg := dlqMessage(ctx, key, value, err, time.Now().UTC())

	if writeErr := p.writer.WriteMessages(ctx, msg); writeErr != nil {
		slog.ErrorContext(ctx, "Failed to publish to DLQ",
			"topic", p.writer.Topic,
			"key", string(key),
			slog.Any("error", writeErr),
			slog.Any("original_error", err))
		return writeErr
	}

	slog.WarnContext(ctx, "Delivery sent to DLQ",
		"topic", p.writer.Topic,
		"key", string(key),
		slog.Any("error", err))
	return nil
}

func (p *DLQPublisher) Close() error {
	return p.writer.Close()
}

func dlqMessage(ctx context.Context, key, value []byte, err error, failedAt time.Time) kafka.Message {
	headers := []kafka.Header{
		{Key: HeaderError, Value: []byte(err.Error())},
		{Key: HeaderFailedAt, Value: []byte(failedAt.Format(time.RFC3339))},
	}
	if corrID := correlation.FromContext(ctx); corrID != "" {
		headers = append(headers, kafka.Header{Key: correlation.KafkaHeaderName, Value: []byte(corrID)})
	}
	return kafka.Message{Key: key, Value: value, Headers: headers}
}
