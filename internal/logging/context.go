package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const runIDKey contextKey = iota

// NewRunID returns a short identifier for one CLI invocation.
func NewRunID() string {
	return uuid.NewString()[:8]
}

// WithRunID returns a new context carrying the given run ID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// NewRunContext derives a context with a freshly generated run ID.
func NewRunContext(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return WithRunID(parent, NewRunID())
}

// RunIDFromContext extracts the run ID from the context, or "".
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFromContext returns the logger tagged with the context's run ID.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if runID := RunIDFromContext(ctx); runID != "" {
		logger = logger.With(KeyRunID, runID)
	}
	return logger
}

// DebugContext logs at debug level, tagged with the run ID of ctx.
func DebugContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).DebugContext(ctx, msg, args...)
}

// WarnContext logs at warn level, tagged with the run ID of ctx.
func WarnContext(ctx context.Context, msg string, args ...any) {
	LoggerFromContext(ctx).WarnContext(ctx, msg, args...)
}
