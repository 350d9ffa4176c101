package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"RenewalSync/internal/api/domain/webhook"
	"RenewalSync/internal/shared/messaging"
)

// AsyncProcessor queues verified deliveries on Kafka for the API consumers.
type AsyncProcessor struct {
	publisher messaging.Publisher
}

func NewAsyncProcessor(publisher messaging.Publisher) *AsyncProcessor {
	return &AsyncProcessor{publisher: publisher}
}

// Process validates the body before queueing it so malformed deliveries are
// rejected to the sender instead of landing in the DLQ. The partition key is
// the payment id.
func (p *AsyncProcessor) Process(ctx context.Context, in webhook.Inbound) (webhook.Outcome, error) {
	ev, err := webhook.Parse(in.Body)
	if err != nil {
		return webhook.Outcome{}, err
	}

	envelope, err := messaging.NewEnvelope(ev.EntityID(), ev.Name, json.RawMessage(in.Body))
	if err != nil {
		return webhook.Outcome{}, fmt.Errorf("create envelope: %w", err)
	}
	envelope.ProviderEventID = in.ProviderEventID
	if !in.ReceivedAt.IsZero() {
		envelope.Timestamp = in.ReceivedAt.UTC()
	}

	if err := p.publisher.Publish(ctx, envelope); err != nil {
		return webhook.Outcome{}, fmt.Errorf("publish webhook: %w", err)
	}
	return webhook.Accepted(), nil
}
