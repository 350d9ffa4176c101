package ingest

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
	"RenewalSync/internal/api/handlers"
	"RenewalSync/internal/shared/external/kafka"
	"RenewalSync/internal/shared/webhook"
	"RenewalSync/pkg/health"
	"RenewalSync/pkg/logger"
	"RenewalSync/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Run bootstraps the ingest service (verified HTTP webhooks → Kafka).
func Run(cfg config.IngestConfig) error {
	logger.Setup(logger.OptionsFromEnv(cfg.LogLevel, cfg.LogFormat))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		logger.CorrelationMiddleware(),
		metrics.GinMiddleware(),
		logger.RequestLogger(),
		gin.Recovery(),
	)

	slog.Info("Initializing Kafka publisher", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaWebhooksTopic)
	publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaWebhooksTopic)
	defer func() { _ = publisher.Close() }()

	processor := webhook.NewAsyncProcessor(publisher)

	router := NewRouter(
		handlers.NewWebhookHandler(processor),
		cfg.WebhookSecret,
		health.NewRegistry(health.NewKafkaChecker(cfg.KafkaBrokers)),
	)
	router.SetUp(engine)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		slog.Info("Ingest service started", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down Ingest service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ingest - Run - server.Shutdown: %w", err)
	}

	slog.Info("Ingest service stopped")
	return nil
}
