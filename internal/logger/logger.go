package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const runIDKey ctxKey = "runID"

// InitLogger installs the default slog logger according to config.
func InitLogger(config Config) {
	InitLoggerWithWriter(config, os.Stderr)
}

// InitLoggerWithWriter installs the default slog logger writing to w.
// Split out from InitLogger so tests can capture output.
func InitLoggerWithWriter(config Config, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     config.LogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	handler = handler.WithAttrs(config.BaseAttributes())
	slog.SetDefault(slog.New(handler))
}

// GenerateRunID creates a new UUID identifying one computation run.
func GenerateRunID() string {
	return uuid.NewString()
}

// WithRunID returns a new context containing the run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run ID from the context, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(runIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// FromContext returns a logger that includes the run_id attribute when present.
func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := RunIDFromContext(ctx); ok {
		return slog.Default().With("run_id", id)
	}
	return slog.Default()
}
