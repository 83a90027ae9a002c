package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// Common regex patterns for sensitive data.
var (
	// JWT pattern: three base64 segments separated by dots
	jwtPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	// Bearer token pattern
	bearerPattern = regexp.MustCompile(`(?i)^bearer\s+.+$`)

	// Basic auth pattern
	basicAuthPattern = regexp.MustCompile(`(?i)^basic\s+.+$`)
)

// DefaultRedactOptions returns the masq options used for every sink.
// JSONBin credentials travel in X-Master-Key and X-Access-Key headers, so
// both spellings of those are covered alongside the generic names.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("X-Master-Key"),
		masq.WithFieldName("X-Access-Key"),
		masq.WithFieldName("master_key"),
		masq.WithFieldName("access_key"),

		// Common sensitive field names
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldName("apiKey"),
		masq.WithFieldName("apikey"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("accessToken"),
		masq.WithFieldName("access_token"),
		masq.WithFieldName("refreshToken"),
		masq.WithFieldName("refresh_token"),
		masq.WithFieldName("credential"),
		masq.WithFieldName("credentials"),
		masq.WithFieldName("authorization"),
		masq.WithFieldName("auth"),
		masq.WithFieldName("bearer"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("session"),
		masq.WithFieldName("privateKey"),
		masq.WithFieldName("private_key"),
		masq.WithFieldName("secretKey"),
		masq.WithFieldName("secret_key"),

		// Field name prefixes for sensitive data
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),

		// Regex patterns for sensitive values
		masq.WithRegex(jwtPattern),
		masq.WithRegex(bearerPattern),
		masq.WithRegex(basicAuthPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data. Extra options extend DefaultRedactOptions.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}

type replaceFunc func(groups []string, a slog.Attr) slog.Attr

// redactHandler applies a ReplaceAttr function in front of handlers that do
// not accept slog.HandlerOptions, such as the charmbracelet pretty printer.
type redactHandler struct {
	next    slog.Handler
	replace replaceFunc
	groups  []string
}

func newRedactHandler(next slog.Handler, replace replaceFunc) *redactHandler {
	return &redactHandler{next: next, replace: replace}
}

func (h *redactHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.replace(h.groups, a)
	}

	return &redactHandler{next: h.next.WithAttrs(redacted), replace: h.replace, groups: h.groups}
}

func (h *redactHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)

	return &redactHandler{next: h.next.WithGroup(name), replace: h.replace, groups: groups}
}
