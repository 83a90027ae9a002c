package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type ctxKey struct{}

// fallback is the logger handed out when a context carries none.
var fallback atomic.Pointer[slog.Logger]

// Default returns the logger set with SetDefault, or slog.Default() before
// SetDefault was called.
func Default() *slog.Logger {
	if logger := fallback.Load(); logger != nil {
		return logger
	}

	return slog.Default()
}

// SetDefault installs logger as the fallback for FromContext and as the
// slog package default.
func SetDefault(logger *slog.Logger) {
	fallback.Store(logger)
	slog.SetDefault(logger)
}

// FromContext returns the logger stored in ctx, or Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}

	return Default()
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithAttrs returns ctx carrying its logger enriched with args, which take
// the same form as slog.Logger.With.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithRequestID tags the context logger with the inbound request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithAttrs(ctx, slog.String("request_id", requestID))
}

// WithTraceID tags the context logger with the active trace ID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return WithAttrs(ctx, slog.String("trace_id", traceID))
}

// WithCorrelationID tags the context logger with the correlation ID that is
// forwarded to JSONBin.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return WithAttrs(ctx, slog.String("correlation_id", correlationID))
}
