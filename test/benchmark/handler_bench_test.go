package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/quotes-client/internal/adapters/http"
	"github.com/jsamuelsen/quotes-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-client/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-client/internal/app"
	"github.com/jsamuelsen/quotes-client/internal/app/observable"
	"github.com/jsamuelsen/quotes-client/internal/domain"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
	"github.com/jsamuelsen/quotes-client/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// memorySource answers every fetch from a fixed document.
type memorySource struct {
	quotes []domain.Quote
}

func newMemorySource(n int) *memorySource {
	categories := []string{"Life", "Success", "Love", "Wisdom", "Friendship"}

	quotes := make([]domain.Quote, 0, n)
	for i := range n {
		category := categories[i%len(categories)]
		quotes = append(quotes, domain.Quote{
			Author:        fmt.Sprintf("Author %d", i),
			Category:      category,
			CategoryImage: "https://img.example/" + category,
			Text:          fmt.Sprintf("Quote number %d.", i),
		})
	}

	return &memorySource{quotes: quotes}
}

func (s *memorySource) FetchAllQuotes(context.Context) ([]domain.Quote, error) {
	return s.quotes, nil
}

func (s *memorySource) FetchQuotesByCategory(_ context.Context, name string) ([]domain.Quote, error) {
	var out []domain.Quote
	for _, q := range s.quotes {
		if q.Category == name {
			out = append(out, q)
		}
	}

	return out, nil
}

func (s *memorySource) FetchCategoryNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(s.quotes))
	for _, q := range s.quotes {
		names = append(names, q.Category)
	}

	return names, nil
}

// setupRouter wires the full middleware chain and screens over an in-memory source.
func setupRouter(n int) *gin.Engine {
	store := app.NewQuotesStore(app.QuotesStoreConfig{Source: newMemorySource(n), Logger: logging.NewDiscard()})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(&simpleHealthChecker{name: "jsonbin"})

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.NewDefaultRouterConfig(
		logging.NewDiscard(),
		"quotes-client-bench",
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z"), nil),
		handlers.NewScreensHandler(handlers.ScreensConfig{Store: store, BasePath: httpadapter.APIBasePath}),
	))

	return engine
}

func benchmarkGET(b *testing.B, engine *gin.Engine, target string) {
	b.Helper()

	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

// BenchmarkLiveness measures the liveness probe through the full middleware chain.
func BenchmarkLiveness(b *testing.B) {
	benchmarkGET(b, setupRouter(10), "/-/live")
}

// BenchmarkReadiness measures readiness with one registered check.
func BenchmarkReadiness(b *testing.B) {
	benchmarkGET(b, setupRouter(10), "/-/ready")
}

// BenchmarkCategoryScreen measures one category grid view: controller
// launch, refresh, deduplication and rendering.
func BenchmarkCategoryScreen(b *testing.B) {
	for _, n := range []int{10, 1000} {
		b.Run(fmt.Sprintf("quotes=%d", n), func(b *testing.B) {
			benchmarkGET(b, setupRouter(n), "/api/v1/screens/categories")
		})
	}
}

// BenchmarkDetailsScreen measures one details view of the default category.
func BenchmarkDetailsScreen(b *testing.B) {
	for _, n := range []int{10, 1000} {
		b.Run(fmt.Sprintf("quotes=%d", n), func(b *testing.B) {
			benchmarkGET(b, setupRouter(n), "/api/v1/screens/details")
		})
	}
}

// BenchmarkCategoryGridResponse measures grid rendering alone.
func BenchmarkCategoryGridResponse(b *testing.B) {
	names, _ := newMemorySource(1000).FetchCategoryNames(context.Background())

	b.ReportAllocs()

	for b.Loop() {
		_ = dto.NewCategoryGridResponse(names, "/api/v1/screens/details")
	}
}

// BenchmarkObservableSet measures a replacement fanned out to subscribers.
func BenchmarkObservableSet(b *testing.B) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := observable.New(0)
	for range 100 {
		_ = v.Subscribe(ctx)
	}

	b.ReportAllocs()

	i := 0
	for b.Loop() {
		i++
		v.Set(i)
	}
}

// simpleHealthChecker is a minimal health checker for benchmarking.
type simpleHealthChecker struct {
	name string
}

func (s *simpleHealthChecker) Name() string {
	return s.name
}

func (s *simpleHealthChecker) Check(_ context.Context) error {
	return nil
}
