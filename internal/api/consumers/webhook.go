package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"RenewalSync/internal/api/domain/webhook"
	"RenewalSync/internal/shared/messaging"
)

// WebhookMessageController feeds queued deliveries into the synchronous processor.
type WebhookMessageController struct {
	processor webhook.Processor
}

func NewWebhookMessageController(p webhook.Processor) *WebhookMessageController {
	return &WebhookMessageController{processor: p}
}

// HandleMessage returns processing errors unchanged so the DLQ middleware can park the delivery.
func (c *WebhookMessageController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		slog.ErrorContext(ctx, "Failed to unmarshal envelope", "key", string(key), slog.Any("error", err))
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	slog.DebugContext(ctx, "Processing webhook message",
		"event_id", env.EventID,
		"key", env.Key,
		"type", env.Type,
		"provider_event_id", env.ProviderEventID)

	out, err := c.processor.Process(ctx, webhook.Inbound{
		ProviderEventID: env.ProviderEventID,
		Body:            env.Payload,
		ReceivedAt:      env.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("process %s %s: %w", env.Type, env.Key, err)
	}

	slog.DebugContext(ctx, "Webhook message processed",
		"event_id", env.EventID,
		"result", out.Result,
		"reason", out.Reason)
	return nil
}
