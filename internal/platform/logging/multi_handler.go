package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler fans records out to several sinks. The logger pairs the
// console handler with the rotating JSON file through it.
type MultiHandler struct {
	sinks []slog.Handler
}

// NewMultiHandler combines handlers. Nil handlers are dropped.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			sinks = append(sinks, h)
		}
	}

	return &MultiHandler{sinks: sinks}
}

// Enabled is true when at least one sink accepts level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sink := range m.sinks {
		if sink.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle writes r to every sink enabled for its level. A failing sink does
// not stop the others; all failures are joined.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler signature
	var errs []error

	for _, sink := range m.sinks {
		if !sink.Enabled(ctx, r.Level) {
			continue
		}

		if err := sink.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, len(m.sinks))
	for i, sink := range m.sinks {
		sinks[i] = fn(sink)
	}

	return &MultiHandler{sinks: sinks}
}
