//go:build integration

package integration

import (
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-client/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quotes-client/internal/adapters/http"
	"github.com/jsamuelsen/quotes-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-client/internal/app"
	"github.com/jsamuelsen/quotes-client/internal/platform/config"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
	"github.com/jsamuelsen/quotes-client/internal/platform/metrics"
	"github.com/jsamuelsen/quotes-client/internal/ports"
)

// service is the full stack wired against a fake bin, served in process.
type service struct {
	server  *httptest.Server
	client  *acl.QuotesClient
	store   *app.QuotesStore
	screens *handlers.ScreensHandler
	metrics *prometheus.Registry
}

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: "jsonbin",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   50,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		Logger: logging.NewDiscard(),
	}
}

func newQuotesClient(cfg *clients.Config) (*acl.QuotesClient, error) {
	httpClient, err := clients.New(cfg)
	if err != nil {
		return nil, err
	}

	return acl.NewQuotesClient(acl.QuotesClientConfig{
		Client:       httpClient,
		BinID:        fakeBinID,
		FilterHeader: fakeFilterHeader,
		Logger:       logging.NewDiscard(),
	}), nil
}

func startService(binURL string, renderTimeout time.Duration) (*service, error) {
	gin.SetMode(gin.TestMode)

	client, err := newQuotesClient(testClientConfig(binURL))
	if err != nil {
		return nil, err
	}

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(client); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()

	cacheMetrics, err := metrics.NewCacheMetrics(registry)
	if err != nil {
		return nil, err
	}

	store := app.NewQuotesStore(app.QuotesStoreConfig{
		Source:   client,
		Observer: cacheMetrics,
		Logger:   logging.NewDiscard(),
	})

	screens := handlers.NewScreensHandler(handlers.ScreensConfig{
		Store:         store,
		BasePath:      httpadapter.APIBasePath,
		RenderTimeout: renderTimeout,
	})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.NewDefaultRouterConfig(
		logging.NewDiscard(),
		"quotes-client-integration",
		handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo("integration", "none", "now"), registry),
		screens,
	))

	return &service{
		server:  httptest.NewServer(engine),
		client:  client,
		store:   store,
		screens: screens,
		metrics: registry,
	}, nil
}

func (s *service) URL() string {
	return s.server.URL
}

func (s *service) Close() {
	s.screens.Close()
	s.server.Close()
}
