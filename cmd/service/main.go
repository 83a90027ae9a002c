// Package main is the entry point for the quotes client service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-client/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotes-client/internal/adapters/http"
	"github.com/jsamuelsen/quotes-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-client/internal/app"
	"github.com/jsamuelsen/quotes-client/internal/platform/config"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
	"github.com/jsamuelsen/quotes-client/internal/platform/metrics"
	"github.com/jsamuelsen/quotes-client/internal/platform/telemetry"
	"github.com/jsamuelsen/quotes-client/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("bin_id", cfg.Services.JSONBin.BinID),
	)

	// 4. Initialize telemetry (propagation only if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create the JSONBin HTTP client and the quotes source on top of it
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.JSONBin.BaseURL,
		ServiceName: cfg.Services.JSONBin.Name,
		Timeout:     cfg.Client.Timeout,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	quotesClient := acl.NewQuotesClient(acl.QuotesClientConfig{
		Client:       httpClient,
		BinID:        cfg.Services.JSONBin.BinID,
		FilterHeader: cfg.Services.JSONBin.FilterHeader,
		Logger:       logger,
	})

	// 6. Readiness follows the bin
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(quotesClient); err != nil {
		return fmt.Errorf("registering quotes client health check: %w", err)
	}

	// 7. Metrics registry with runtime collectors and the cache outcomes
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cacheMetrics, err := metrics.NewCacheMetrics(registry)
	if err != nil {
		return fmt.Errorf("registering cache metrics: %w", err)
	}

	// 8. Create the quotes store (application layer)
	store := app.NewQuotesStore(app.QuotesStoreConfig{
		Source:   quotesClient,
		Observer: cacheMetrics,
		Logger:   logger,
	})

	if cfg.Screens.WarmOnStart {
		warmCtx, cancel := context.WithTimeout(ctx, cfg.Screens.RenderTimeout)
		if err := store.Warm(warmCtx); err != nil {
			logger.Warn("cache warm-up incomplete, screens start from empty caches", slog.Any("error", err))
		}
		cancel()
	}

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, registry)
	screensHandler := handlers.NewScreensHandler(handlers.ScreensConfig{
		Store:         store,
		BasePath:      http.APIBasePath,
		RenderTimeout: cfg.Screens.RenderTimeout,
	})

	// 10. Create HTTP server; Shutdown ends open event streams
	server := http.New(&cfg.Server, logger)
	server.RegisterOnShutdown(screensHandler.Close)

	// 11. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(
		logger,
		cfg.Telemetry.ServiceName,
		healthHandler,
		screensHandler,
	))

	// 12. Start server (non-blocking)
	serverErr, err := server.Start()
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or the server fails.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
