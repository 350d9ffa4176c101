package webhook

import (
	"context"
	"log/slog"
)

//go:generate mockgen -source logsink.go -destination mock_logsink.go -package webhook

// LogEntry mirrors the diagnostic record written when a delivery is abandoned.
type LogEntry struct {
	Message string
	Data    string
	Event   string
}

type LogSink interface {
	Write(ctx context.Context, entry LogEntry)
}

type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(l *slog.Logger) *SlogSink {
	return &SlogSink{logger: l.With("component", "webhook")}
}

func (s *SlogSink) Write(ctx context.Context, entry LogEntry) {
	s.logger.ErrorContext(ctx, entry.Message,
		"data", entry.Data,
		"event", entry.Event)
}
