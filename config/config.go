package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	PaymentActionCapture   = "capture"
	PaymentActionAuthorize = "authorize"

	WebhookModeSync  = "sync"
	WebhookModeKafka = "kafka"

	DeliverySinkPostgres   = "postgres"
	DeliverySinkOpensearch = "opensearch"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL,required,notEmpty"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	RazorpayBaseURL          string        `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com"`
	RazorpayKeyID            string        `env:"RAZORPAY_KEY_ID,required,notEmpty"`
	RazorpayKeySecret        string        `env:"RAZORPAY_KEY_SECRET,required,notEmpty"`
	HTTPGatewayClientTimeout time.Duration `env:"HTTP_GATEWAY_CLIENT_TIMEOUT" envDefault:"20s"`
	WebhookSecret            string        `env:"RAZORPAY_WEBHOOK_SECRET,required,notEmpty"`

	// Bearer token for the delivery listing. The route is not served when empty.
	OperatorToken string `env:"OPERATOR_TOKEN"`

	// "capture" captures authorized payments for the full order amount, "authorize" leaves them alone.
	PaymentAction string `env:"PAYMENT_ACTION" envDefault:"capture"`
	OrderNoteKey  string `env:"ORDER_NOTE_KEY" envDefault:"order_id"`

	// Webhook processing mode: "sync" (direct) or "kafka" (async via Kafka)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	DeliverySink              string   `env:"DELIVERY_SINK" envDefault:"postgres"`
	OpensearchUrls            []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexDeliveries string   `env:"OPENSEARCH_INDEX_DELIVERIES" envDefault:"webhook-deliveries"`

	KafkaBrokers               []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaWebhooksTopic         string   `env:"KAFKA_WEBHOOKS_TOPIC" envDefault:"webhooks.razorpay"`
	KafkaWebhooksDLQTopic      string   `env:"KAFKA_WEBHOOKS_DLQ_TOPIC" envDefault:"webhooks.razorpay.dlq"`
	KafkaWebhooksConsumerGroup string   `env:"KAFKA_WEBHOOKS_CONSUMER_GROUP" envDefault:"renewal-sync-webhooks"`
}

// AutoCapture reports whether authorized payments should be captured on the webhook path.
func (c Config) AutoCapture() bool {
	return c.PaymentAction == PaymentActionCapture
}

func (c Config) Validate() error {
	switch c.PaymentAction {
	case PaymentActionCapture, PaymentActionAuthorize:
	default:
		return fmt.Errorf("invalid PAYMENT_ACTION: %q", c.PaymentAction)
	}

	switch c.WebhookMode {
	case WebhookModeSync:
	case WebhookModeKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required in %s mode", WebhookModeKafka)
		}
	default:
		return fmt.Errorf("invalid WEBHOOK_MODE: %q", c.WebhookMode)
	}

	switch c.DeliverySink {
	case DeliverySinkPostgres:
	case DeliverySinkOpensearch:
		if len(c.OpensearchUrls) == 0 {
			return fmt.Errorf("OPENSEARCH_URLS is required for %s delivery sink", DeliverySinkOpensearch)
		}
	default:
		return fmt.Errorf("invalid DELIVERY_SINK: %q", c.DeliverySink)
	}

	if c.OrderNoteKey == "" {
		return fmt.Errorf("ORDER_NOTE_KEY must not be empty")
	}
	return nil
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// IngestConfig holds configuration for the Ingest service (HTTP → Kafka).
type IngestConfig struct {
	Port      int    `env:"PORT" envDefault:"3001"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	WebhookSecret string `env:"RAZORPAY_WEBHOOK_SECRET,required,notEmpty"`

	KafkaBrokers       []string `env:"KAFKA_BROKERS,required" envSeparator:","`
	KafkaWebhooksTopic string   `env:"KAFKA_WEBHOOKS_TOPIC" envDefault:"webhooks.razorpay"`
}

func NewIngestConfig() (IngestConfig, error) {
	c, err := env.ParseAs[IngestConfig]()
	if err != nil {
		return IngestConfig{}, err
	}

	return c, nil
}
