package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/quotes-client/internal/platform/telemetry"

// TraceIDHeader carries the active trace ID back to the caller.
const TraceIDHeader = "X-Trace-ID"

// Metrics holds HTTP server metrics.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates HTTP server metrics on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests, open event streams included"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware records request metrics, echoes the trace ID in X-Trace-ID and
// tags the request logger with it.
// Durations are not recorded for paths with a streamPrefixes prefix, since
// an event stream lasts as long as the subscriber stays connected.
func Middleware(streamPrefixes ...string) gin.HandlerFunc {
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)

		if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
			traceID := span.SpanContext().TraceID().String()
			c.Header(TraceIDHeader, traceID)

			ctx = logging.WithTraceID(ctx, traceID)
			c.Request = c.Request.WithContext(ctx)
		}

		if metrics != nil {
			metrics.activeRequests.Add(ctx, 1, metric.WithAttributes(method, route))
			defer metrics.activeRequests.Add(ctx, -1, metric.WithAttributes(method, route))
		}

		c.Next()

		if metrics == nil {
			return
		}

		attrs := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
		metrics.requestTotal.Add(ctx, 1, attrs)

		if !hasAnyPrefix(c.Request.URL.Path, streamPrefixes) {
			metrics.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		}
	}
}

// TracingMiddleware starts a server span per request with otelgin.
// Paths with a skipPrefixes prefix (health probes, metrics scrapes) are not traced.
func TracingMiddleware(serviceName string, skipPrefixes ...string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return !hasAnyPrefix(r.URL.Path, skipPrefixes)
		}),
	)
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}
