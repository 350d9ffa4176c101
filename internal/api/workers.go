package api

import (
	"context"
	"log/slog"

	"RenewalSync/config"
	"RenewalSync/internal/api/consumers"
	"RenewalSync/internal/api/domain/webhook"
	"RenewalSync/internal/shared/external/kafka"
	"RenewalSync/internal/shared/messaging"
)

// StartWorkers consumes queued webhook deliveries until ctx is cancelled.
// Failed deliveries go straight to the DLQ topic; nothing is retried here.
func StartWorkers(ctx context.Context, cfg config.Config, processor webhook.Processor) {
	dlq := kafka.NewDLQPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksDLQTopic)

	controller := consumers.NewWebhookMessageController(processor)
	handler := webhookMessageHandler(cfg.KafkaWebhooksTopic, cfg.KafkaWebhooksConsumerGroup, controller.HandleMessage, dlq)
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic, cfg.KafkaWebhooksConsumerGroup)
	runner := messaging.NewRunner([]messaging.Worker{consumer}, handler)

	go func() {
		defer func() { _ = dlq.Close() }()

		slog.Info("Starting webhook consumer",
			"topic", cfg.KafkaWebhooksTopic,
			"group", cfg.KafkaWebhooksConsumerGroup)
		if err := runner.Start(ctx); err != nil {
			slog.Error("Webhook runner failed", slog.Any("error", err))
		}
	}()
}

// webhookMessageHandler measures the controller itself, then dead-letters its failures.
func webhookMessageHandler(topic, group string, handle messaging.MessageHandler, dlq messaging.DLQPublisher) messaging.MessageHandler {
	return messaging.WithDLQ(messaging.WithMetrics(topic, group, handle), dlq)
}
