package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type traceKey struct{}

// WithTraceID returns ctx carrying id as its trace ID.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

// GetTraceID returns the trace ID stored by WithTraceID, falling back to
// the active OpenTelemetry span.
func GetTraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceKey{}).(string); ok {
		return id
	}
	return TraceIDFromContext(ctx)
}

// GenerateTraceID returns a random UUIDv4.
func GenerateTraceID() string {
	return uuid.NewString()
}

// EnsureTraceID returns ctx unchanged if it already has a trace ID, and a
// child carrying a fresh one otherwise.
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, GenerateTraceID())
}

// WithComponent tags logger (the process logger when nil) with a component.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}
