// Package logger provides structured logging setup using Go's slog package.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures the logger setup.
type Options struct {
	Level   string    // debug, info, warn, error
	Console bool      // pretty print for dev (LOG_FORMAT=console)
	Output  io.Writer // defaults to os.Stdout
}

// OptionsFromEnv builds Options from the LOG_LEVEL / LOG_FORMAT config values.
func OptionsFromEnv(level, format string) Options {
	return Options{
		Level:   level,
		Console: strings.EqualFold(format, "console") || strings.EqualFold(format, "text"),
	}
}

// Setup configures the global slog logger with correlation ID support.
func Setup(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(opts.Level),
		AddSource: true,
	}

	var handler slog.Handler
	if opts.Console {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	// Wrap with correlation handler to auto-inject correlation_id from context
	handler = NewCorrelationHandler(handler)

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
