// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ErrDecode, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quotes-client/internal/domain"
)

// QuotesSource is the remote document holding every quote.
// All three reads hit the same resource; they differ only in the
// server-side filter applied to it.
//
// Implementations never panic past this boundary: transport problems come
// back as domain.ErrUnavailable (or ErrNotFound / ErrForbidden for the
// matching statuses) and malformed bodies as domain.ErrDecode. An empty
// list is a successful answer, not an error.
type QuotesSource interface {
	// FetchAllQuotes returns the full quote list from the document root.
	FetchAllQuotes(ctx context.Context) ([]domain.Quote, error)

	// FetchQuotesByCategory returns the quotes whose category equals name.
	// Returns domain.ErrValidation without a network call when name cannot
	// be embedded in a filter expression.
	FetchQuotesByCategory(ctx context.Context, name string) ([]domain.Quote, error)

	// FetchCategoryNames returns the category of every quote, duplicates included.
	FetchCategoryNames(ctx context.Context) ([]string, error)
}

// RefreshObserver is notified about every store refresh attempt.
// Implementations must be safe for concurrent use.
type RefreshObserver interface {
	// RefreshCompleted reports the outcome of one refresh of the named cache.
	// kind is domain.FailureNone when the cache was replaced.
	RefreshCompleted(cache string, kind domain.FailureKind)
}
