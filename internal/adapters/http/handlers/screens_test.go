package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-client/internal/app"
	"github.com/jsamuelsen/quotes-client/internal/domain"
	"github.com/jsamuelsen/quotes-client/internal/mocks"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

var (
	lifeQuote    = domain.Quote{Author: "A", Category: "Life", CategoryImage: "https://img/life.png", Text: "Live."}
	successQuote = domain.Quote{Author: "B", Category: "Success", CategoryImage: "https://img/success.png", Text: "Win."}
)

func newScreens(t *testing.T, renderTimeout time.Duration) (*gin.Engine, *app.QuotesStore, *mocks.MockQuotesSource) {
	t.Helper()

	source := mocks.NewMockQuotesSource(t)
	store := app.NewQuotesStore(app.QuotesStoreConfig{Source: source, Logger: logging.NewDiscard()})

	router := gin.New()
	NewScreensHandler(ScreensConfig{
		Store:         store,
		BasePath:      "/api/v1",
		RenderTimeout: renderTimeout,
	}).RegisterRoutes(router.Group("/api/v1"))

	return router, store, source
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

func TestNewScreensHandler_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { NewScreensHandler(ScreensConfig{}) })
}

func TestCategories_RendersDistinctGrid(t *testing.T) {
	router, _, source := newScreens(t, time.Second)
	source.EXPECT().FetchCategoryNames(mock.Anything).Return([]string{"Life", "Life", "Success", "Love Life"}, nil).Once()

	w := get(router, "/api/v1/screens/categories")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"columns": 2,
		"items": [
			{"name": "Life", "href": "/api/v1/screens/details?category=Life"},
			{"name": "Success", "href": "/api/v1/screens/details?category=Success"},
			{"name": "Love Life", "href": "/api/v1/screens/details?category=Love+Life"}
		]
	}`, w.Body.String())
}

func TestCategories_FailureRendersCachedNames(t *testing.T) {
	router, _, source := newScreens(t, time.Second)
	source.EXPECT().FetchCategoryNames(mock.Anything).Return([]string{"Life"}, nil).Once()
	source.EXPECT().FetchCategoryNames(mock.Anything).Return(nil, domain.NewUnavailableError("jsonbin", "HTTP 503")).Once()

	require.Equal(t, http.StatusOK, get(router, "/api/v1/screens/categories").Code)

	w := get(router, "/api/v1/screens/categories")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Life"`)
}

func TestDetails(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		category string
		quotes   []domain.Quote
	}{
		{"absent parameter defaults to Life", "/api/v1/screens/details", "Life", []domain.Quote{lifeQuote}},
		{"named category", "/api/v1/screens/details?category=Success", "Success", []domain.Quote{successQuote}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, source := newScreens(t, time.Second)
			source.EXPECT().FetchQuotesByCategory(mock.Anything, tt.category).Return(tt.quotes, nil).Once()

			w := get(router, tt.target)

			require.Equal(t, http.StatusOK, w.Code)

			var resp dto.DetailsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.NewDetailsResponse(tt.category, tt.quotes), resp)
		})
	}
}

func TestDetails_RejectsBadCategory(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"empty", "/api/v1/screens/details?category="},
		{"control character", "/api/v1/screens/details?category=Life%0A"},
		{"too long", "/api/v1/screens/details?category=" + strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := newScreens(t, time.Second)

			w := get(router, tt.target)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
			assert.Contains(t, resp.Error.Details, "category")
		})
	}
}

func TestDetails_RenderTimeoutShowsCache(t *testing.T) {
	router, _, source := newScreens(t, 20*time.Millisecond)
	source.EXPECT().FetchQuotesByCategory(mock.Anything, "Life").
		RunAndReturn(func(ctx context.Context, _ string) ([]domain.Quote, error) {
			<-ctx.Done()
			return []domain.Quote{lifeQuote}, nil
		}).Once()

	w := get(router, "/api/v1/screens/details")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"category":"Life","quotes":[]}`, w.Body.String())
}

func TestDetails_FailedFetchShowsLastLoadedQuotes(t *testing.T) {
	router, _, source := newScreens(t, time.Second)
	source.EXPECT().FetchQuotesByCategory(mock.Anything, "Life").Return([]domain.Quote{lifeQuote}, nil).Once()
	source.EXPECT().FetchQuotesByCategory(mock.Anything, "Success").
		Return(nil, domain.NewUnavailableError("jsonbin", "HTTP 503")).Once()

	w := get(router, "/api/v1/screens/details?category=Life")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(router, "/api/v1/screens/details?category=Success")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DetailsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.NewDetailsResponse("Success", []domain.Quote{lifeQuote}), resp)
}

func TestDetails_EmptyFetchShowsLastLoadedQuotes(t *testing.T) {
	router, store, source := newScreens(t, time.Second)
	source.EXPECT().FetchQuotesByCategory(mock.Anything, "Success").Return([]domain.Quote{successQuote}, nil).Once()
	source.EXPECT().FetchQuotesByCategory(mock.Anything, "Love").Return([]domain.Quote{}, nil).Once()

	require.NoError(t, store.RefreshCategoryQuotes(context.Background(), "Success"))

	w := get(router, "/api/v1/screens/details?category=Love")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"Love"`)
	assert.Contains(t, w.Body.String(), `"text":"Win."`)
}

func TestAllQuotes(t *testing.T) {
	router, _, source := newScreens(t, time.Second)
	source.EXPECT().FetchAllQuotes(mock.Anything).Return([]domain.Quote{lifeQuote, successQuote}, nil).Once()

	w := get(router, "/api/v1/quotes")

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuotesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.NewQuoteResponses([]domain.Quote{lifeQuote, successQuote}), resp.Quotes)
}

// streamRecorder is a ResponseWriter safe to read while a handler writes to it.
type streamRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   bytes.Buffer
	code   int
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (r *streamRecorder) Header() http.Header { return r.header }

func (r *streamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.code = code
}

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.body.Write(b)
}

func (r *streamRecorder) Flush() {}

func (r *streamRecorder) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.body.String()
}

func openStream(t *testing.T, router http.Handler, target string) (*streamRecorder, func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	rec := newStreamRecorder()
	done := make(chan struct{})

	go func() {
		defer close(done)
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil).WithContext(ctx))
	}()

	return rec, func() {
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("stream did not end after disconnect")
		}
	}
}

func TestCategoryEvents_StreamsEmissions(t *testing.T) {
	router, _, source := newScreens(t, time.Second)
	source.EXPECT().FetchCategoryNames(mock.Anything).Return([]string{"Life", "Success", "Life"}, nil).Once()

	rec, disconnect := openStream(t, router, "/api/v1/screens/categories/events")

	require.Eventually(t, func() bool {
		return strings.Contains(rec.String(), `"name":"Success"`)
	}, time.Second, 5*time.Millisecond)

	disconnect()

	assert.Contains(t, rec.String(), "event:categories")
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
}

func TestDetailsEvents_TearsDownOnDisconnect(t *testing.T) {
	router, store, source := newScreens(t, time.Second)
	fetching := make(chan struct{})

	source.EXPECT().FetchQuotesByCategory(mock.Anything, "Success").
		RunAndReturn(func(ctx context.Context, _ string) ([]domain.Quote, error) {
			close(fetching)
			<-ctx.Done()

			return []domain.Quote{successQuote}, nil
		}).Once()

	rec, disconnect := openStream(t, router, "/api/v1/screens/details/events?category=Success")

	<-fetching
	require.Eventually(t, func() bool {
		return strings.Contains(rec.String(), "event:details")
	}, time.Second, 5*time.Millisecond)

	disconnect()

	assert.Contains(t, rec.String(), `"category":"Success"`)
	assert.Empty(t, store.CategoryQuotes().Value(), "late response must not be committed")
}

func TestScreensHandler_CloseEndsStreams(t *testing.T) {
	source := mocks.NewMockQuotesSource(t)
	source.EXPECT().FetchCategoryNames(mock.Anything).Return([]string{"Life"}, nil).Once()

	store := app.NewQuotesStore(app.QuotesStoreConfig{Source: source, Logger: logging.NewDiscard()})
	handler := NewScreensHandler(ScreensConfig{Store: store, BasePath: "/api/v1"})

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	rec := newStreamRecorder()
	done := make(chan struct{})

	go func() {
		defer close(done)
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/screens/categories/events", nil))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(rec.String(), `"name":"Life"`)
	}, time.Second, 5*time.Millisecond)

	handler.Close()
	handler.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream still open after Close")
	}
}

func TestCategoryEvents_LogsUnliftedWriteDeadline(t *testing.T) {
	router, _, source := newScreens(t, time.Second)
	source.EXPECT().FetchCategoryNames(mock.Anything).Return([]string{"Life"}, nil).Once()

	var logs syncBuffer

	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), logger))
	rec := newStreamRecorder()
	done := make(chan struct{})

	go func() {
		defer close(done)
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/screens/categories/events", nil).WithContext(ctx))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(rec.String(), `"name":"Life"`)
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done

	assert.Contains(t, logs.String(), "event stream keeps the server write deadline")
	assert.Contains(t, logs.String(), `"event":"categories"`)
}

// syncBuffer is a bytes.Buffer safe for concurrent log writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
