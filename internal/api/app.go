package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RenewalSync/config"
	"RenewalSync/internal/api/domain/delivery"
	"RenewalSync/internal/api/domain/webhook"
	"RenewalSync/internal/api/external/opensearch"
	"RenewalSync/internal/api/external/razorpay"
	"RenewalSync/internal/api/handlers"
	delivery_repo "RenewalSync/internal/api/repo/delivery"
	order_repo "RenewalSync/internal/api/repo/order"
	subscription_repo "RenewalSync/internal/api/repo/subscription"
	"RenewalSync/internal/shared/external/kafka"
	asyncwebhook "RenewalSync/internal/shared/webhook"
	"RenewalSync/pkg/health"
	"RenewalSync/pkg/logger"
	"RenewalSync/pkg/postgres"
)

const shutdownTimeout = 5 * time.Second

var schemaTables = []string{"orders", "platform_subscriptions", "subscription_renewals", "webhook_deliveries"}

// Run bootstraps the API service and blocks until SIGINT/SIGTERM.
func Run(cfg config.Config) error {
	l := logger.Setup(logger.OptionsFromEnv(cfg.LogLevel, cfg.LogFormat))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := ApplyMigrations(cfg.PgURL, MigrationFS); err != nil {
		return fmt.Errorf("api - Run - ApplyMigrations: %w", err)
	}

	pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("api - Run - postgres.New: %w", err)
	}
	defer pool.Close()

	checkers := []health.Checker{
		health.NewPostgresChecker(pool.Pool, schemaTables...),
		health.Optional(health.NewRazorpayChecker(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, nil)),
	}

	sink, sinkChecker, err := newDeliverySink(ctx, cfg, pool)
	if err != nil {
		return fmt.Errorf("api - Run - delivery sink: %w", err)
	}
	if sinkChecker != nil {
		checkers = append(checkers, sinkChecker)
	}

	gateway := razorpay.New(
		cfg.RazorpayBaseURL,
		cfg.RazorpayKeyID,
		cfg.RazorpayKeySecret,
		&http.Client{Timeout: cfg.HTTPGatewayClientTimeout},
	)

	handler := webhook.NewHandler(
		gateway,
		order_repo.NewPgOrderRepo(pool),
		subscription_repo.NewPgSubscriptionRepo(pool),
		webhook.NewSlogSink(l),
		webhook.Config{AutoCapture: cfg.AutoCapture(), OrderNoteKey: cfg.OrderNoteKey},
	)
	syncProcessor := webhook.NewSyncProcessor(handler, sink)

	// In kafka mode the endpoint only queues; the consumer runs the sync processor.
	var processor webhook.Processor = syncProcessor
	if cfg.WebhookMode == config.WebhookModeKafka {
		slog.Info("Webhook mode: kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaWebhooksTopic)

		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic)
		defer func() { _ = publisher.Close() }()

		processor = asyncwebhook.NewAsyncProcessor(publisher)
		checkers = append(checkers, health.NewKafkaChecker(cfg.KafkaBrokers))

		StartWorkers(ctx, cfg, syncProcessor)
	}

	engine := NewGinEngine()
	router := NewRouter(
		handlers.NewWebhookHandler(processor),
		handlers.NewDeliveryHandler(sink),
		cfg.WebhookSecret,
		cfg.OperatorToken,
		health.NewRegistry(checkers...),
	)
	router.SetUp(engine)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		slog.Info("Starting API HTTP server", "port", cfg.Port, "webhook_mode", cfg.WebhookMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down API service gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api - Run - server.Shutdown: %w", err)
	}
	return nil
}

func newDeliverySink(ctx context.Context, cfg config.Config, pool *postgres.Postgres) (delivery.Sink, health.Checker, error) {
	if cfg.DeliverySink == config.DeliverySinkOpensearch {
		sink, err := opensearch.NewDeliverySink(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexDeliveries)
		if err != nil {
			return nil, nil, err
		}
		return sink, health.NewOpensearchChecker(sink.Client()), nil
	}
	return delivery_repo.NewPgDeliveryRepo(pool.Pool, pool.Builder), nil, nil
}
