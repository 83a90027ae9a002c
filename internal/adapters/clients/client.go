package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-client/internal/platform/config"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

const (
	// instrumentationName is used for OpenTelemetry tracer and meter.
	instrumentationName = "github.com/jsamuelsen/quotes-client/internal/adapters/clients"

	// httpStatusCategoryDivisor divides status code to get category (2xx, 4xx, 5xx).
	httpStatusCategoryDivisor = 100

	// defaultTimeout is the default request timeout if not configured.
	defaultTimeout = 10 * time.Second
)

// Config configures an HTTP client instance.
type Config struct {
	// BaseURL is the base URL for all requests (e.g., "https://api.jsonbin.io").
	BaseURL string

	// ServiceName identifies the downstream service for logging and tracing.
	ServiceName string

	// Timeout bounds a single request, including reading the response headers.
	Timeout time.Duration

	// Circuit configures circuit breaker behavior.
	Circuit config.CircuitBreakerConfig

	// Transport configures the connection pool. Zero values fall back to
	// the config package defaults.
	Transport config.TransportConfig

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Client is an instrumented HTTP client for downstream services.
// Every call is a single attempt; callers decide whether to ask again.
// It provides:
//   - Circuit breaker protection
//   - OpenTelemetry tracing and metrics
//   - Request/correlation ID propagation
//   - Structured logging
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer trace.Tracer

	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New creates a new instrumented HTTP client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(
		slog.String("component", "clients.Client"),
		slog.String("downstream", cfg.ServiceName),
	)

	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: newTransport(cfg.Transport),
		},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(tc config.TransportConfig) *http.Transport {
	if tc.MaxIdleConns <= 0 {
		tc.MaxIdleConns = config.DefaultTransportMaxIdleConns
	}

	if tc.MaxIdleConnsPerHost <= 0 {
		tc.MaxIdleConnsPerHost = config.DefaultTransportMaxIdleConnsPerHost
	}

	if tc.IdleConnTimeout <= 0 {
		tc.IdleConnTimeout = 90 * time.Second
	}

	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = tc.MaxIdleConns
	t.MaxIdleConnsPerHost = tc.MaxIdleConnsPerHost
	t.IdleConnTimeout = tc.IdleConnTimeout

	return t
}

// Do executes an HTTP request once with circuit breaker, tracing, and logging.
//
// A response with status 5xx or 429 counts as a circuit breaker failure but is
// still returned to the caller, who owns the body. A cancelled context neither
// trips nor heals the breaker.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(startTime), "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req.WithContext(ctx))
	duration := time.Since(startTime)

	if err != nil {
		return nil, c.recordFailure(ctx, req, err, span, logger, duration)
	}

	if isServerFailure(resp.StatusCode) {
		c.cb.RecordFailure()
	} else {
		c.cb.RecordSuccess()
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	statusCategory := fmt.Sprintf("%dxx", resp.StatusCode/httpStatusCategoryDivisor)
	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, statusCategory)

	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

func (c *Client) recordFailure(
	ctx context.Context,
	req *http.Request,
	err error,
	span trace.Span,
	logger *slog.Logger,
	duration time.Duration,
) error {
	span.SetStatus(codes.Error, err.Error())

	if errors.Is(err, context.Canceled) {
		c.cb.RecordCanceled()
		c.recordMetrics(ctx, req.Method, 0, duration, "context_canceled")
		logger.Debug("request canceled", slog.Duration("duration", duration))

		return err
	}

	c.cb.RecordFailure()
	c.recordMetrics(ctx, req.Method, 0, duration, "error")
	logger.Warn("request failed",
		slog.Duration("duration", duration),
		slog.Any("error", err),
	)

	return fmt.Errorf("%w: %w", ErrRequestFailed, err)
}

// Get performs an HTTP GET request. Entries in header are set on the request
// before the request and correlation IDs are added.
func (c *Client) Get(ctx context.Context, path string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return c.Do(ctx, req)
}

// CircuitState returns the current state of the circuit breaker.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// ServiceName returns the downstream service name.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// injectHeaders forwards the inbound request and correlation IDs.
func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	middleware.ForwardIDs(ctx, req.Header)
}

// buildURL constructs the full URL from base URL and path.
func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// recordMetrics records request metrics.
func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	// Use a context that survives cancellation so aborted requests are still counted.
	ctx = context.WithoutCancel(ctx)
	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func isServerFailure(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}
