package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-client/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds one-shot API requests.
const DefaultRequestTimeout = 30 * time.Second

// APIBasePath prefixes the screens and the quotes listing.
const APIBasePath = "/api/v1"

// HealthPathPrefix prefixes the operational endpoints.
const HealthPathPrefix = "/-/"

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger seeds every request context.
	Logger *slog.Logger

	// ServiceName names the server spans.
	ServiceName string

	// HealthHandler serves /-/ routes. Optional.
	HealthHandler *handlers.HealthHandler

	// ScreensHandler serves the API routes. Optional.
	ScreensHandler *handlers.ScreensHandler

	// Timeout bounds one-shot API requests. Zero disables it.
	Timeout time.Duration
}

// EventStreamPaths lists the long-lived routes that get no request deadline
// and no duration metric.
func EventStreamPaths() []string {
	return []string{
		APIBasePath + handlers.CategoriesEventsPath,
		APIBasePath + handlers.DetailsEventsPath,
	}
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Context logger - seed the request context with the service logger
//  2. Recovery - catch panics
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - tracing and metrics (skips health endpoints)
//  6. Logging - request logging (skips health endpoints)
//
// The API group adds a request timeout that event streams are exempt from.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	streams := EventStreamPaths()

	engine.Use(
		middleware.ContextLogger(cfg.Logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName, HealthPathPrefix),
		telemetry.Middleware(streams...),
		middleware.Logging(),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group(APIBasePath)
	if cfg.Timeout > 0 {
		api.Use(middleware.Timeout(cfg.Timeout, streams...))
	}

	if cfg.ScreensHandler != nil {
		cfg.ScreensHandler.RegisterRoutes(api)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with the default timeout.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	serviceName string,
	healthHandler *handlers.HealthHandler,
	screensHandler *handlers.ScreensHandler,
) RouterConfig {
	return RouterConfig{
		Logger:         logger,
		ServiceName:    serviceName,
		HealthHandler:  healthHandler,
		ScreensHandler: screensHandler,
		Timeout:        DefaultRequestTimeout,
	}
}
