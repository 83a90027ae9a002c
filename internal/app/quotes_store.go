// Package app holds the quotes store and the screen controllers built on it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quotes-client/internal/app/observable"
	"github.com/jsamuelsen/quotes-client/internal/domain"
	"github.com/jsamuelsen/quotes-client/internal/ports"
)

// Cache names used in logs and metric labels.
const (
	CacheAllQuotes      = "all_quotes"
	CacheCategoryQuotes = "category_quotes"
	CacheCategoryNames  = "category_names"
)

// QuotesStore caches the three views of the remote quotes document.
//
// Each cache starts empty and is replaced wholesale by a refresh that
// returned at least one element. Any other outcome leaves it as it was,
// so readers keep seeing the last good data.
type QuotesStore struct {
	source   ports.QuotesSource
	observer ports.RefreshObserver
	logger   *slog.Logger

	quotes         *observable.Value[[]domain.Quote]
	categoryQuotes *observable.Value[[]domain.Quote]
	categoryNames  *observable.Value[[]string]
}

// QuotesStoreConfig contains the store's collaborators.
type QuotesStoreConfig struct {
	Source   ports.QuotesSource
	Observer ports.RefreshObserver // optional
	Logger   *slog.Logger          // optional, defaults to slog.Default()
}

// NewQuotesStore creates a store with empty caches.
// Panics if Source is nil.
func NewQuotesStore(cfg QuotesStoreConfig) *QuotesStore {
	if cfg.Source == nil {
		panic("app: QuotesStore requires a QuotesSource")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &QuotesStore{
		source:         cfg.Source,
		observer:       observer,
		logger:         logger.With(slog.String("component", "quotes_store")),
		quotes:         observable.New([]domain.Quote{}, observable.WithEqual(observable.SliceEqual[domain.Quote])),
		categoryQuotes: observable.New([]domain.Quote{}, observable.WithEqual(observable.SliceEqual[domain.Quote])),
		categoryNames:  observable.New([]string{}, observable.WithEqual(observable.SliceEqual[string])),
	}
}

// Quotes is the all-quotes cache.
func (s *QuotesStore) Quotes() observable.ReadOnly[[]domain.Quote] {
	return s.quotes.ReadOnly()
}

// CategoryQuotes is the cache of the most recently fetched category.
func (s *QuotesStore) CategoryQuotes() observable.ReadOnly[[]domain.Quote] {
	return s.categoryQuotes.ReadOnly()
}

// CategoryNames is the raw category list, one entry per quote, duplicates included.
func (s *QuotesStore) CategoryNames() observable.ReadOnly[[]string] {
	return s.categoryNames.ReadOnly()
}

// RefreshAllQuotes fetches every quote and replaces the all-quotes cache.
func (s *QuotesStore) RefreshAllQuotes(ctx context.Context) error {
	return refresh(ctx, s, CacheAllQuotes, s.quotes, s.source.FetchAllQuotes)
}

// RefreshCategoryQuotes fetches the quotes of one category and replaces the
// category-quotes cache.
func (s *QuotesStore) RefreshCategoryQuotes(ctx context.Context, name string) error {
	return refresh(ctx, s, CacheCategoryQuotes, s.categoryQuotes,
		func(ctx context.Context) ([]domain.Quote, error) {
			return s.source.FetchQuotesByCategory(ctx, name)
		},
		slog.String("category", name),
	)
}

// RefreshCategoryNames fetches the category list and replaces its cache.
func (s *QuotesStore) RefreshCategoryNames(ctx context.Context) error {
	return refresh(ctx, s, CacheCategoryNames, s.categoryNames, s.source.FetchCategoryNames)
}

// Warm refreshes the all-quotes and category-name caches concurrently.
// Both refreshes run to completion; the first failure is returned.
func (s *QuotesStore) Warm(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error { return s.RefreshAllQuotes(ctx) })
	g.Go(func() error { return s.RefreshCategoryNames(ctx) })

	return g.Wait()
}

// refresh runs one fetch and commits its result. The returned error is
// informational: whatever it is, the cache has not changed.
func refresh[T any](
	ctx context.Context,
	s *QuotesStore,
	cache string,
	target *observable.Value[[]T],
	fetch func(context.Context) ([]T, error),
	attrs ...any,
) error {
	data, err := fetch(ctx)

	switch {
	case err != nil:
	case len(data) == 0:
		err = fmt.Errorf("%s: %w", cache, domain.ErrEmptyResult)
	case ctx.Err() != nil:
		// The owner went away while the response was in flight.
		err = fmt.Errorf("%s: discarding result: %w", cache, ctx.Err())
	}

	kind := domain.ClassifyFailure(err)
	s.observer.RefreshCompleted(cache, kind)

	logger := s.logger.With(slog.String("cache", cache)).With(attrs...)

	if err != nil {
		level := slog.LevelWarn
		if kind == domain.FailureCanceled {
			level = slog.LevelDebug
		}

		logger.Log(ctx, level, "refresh failed, keeping cached data",
			slog.String("failure", string(kind)),
			slog.Any("error", err),
		)

		return err
	}

	changed := target.Set(data)

	logger.DebugContext(ctx, "refresh succeeded",
		slog.Int("count", len(data)),
		slog.Bool("changed", changed),
	)

	return nil
}

type nopObserver struct{}

func (nopObserver) RefreshCompleted(string, domain.FailureKind) {}
