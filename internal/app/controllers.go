package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotes-client/internal/app/observable"
	"github.com/jsamuelsen/quotes-client/internal/domain"
)

// CategoryStore is what the category screen needs from the store.
type CategoryStore interface {
	RefreshCategoryNames(ctx context.Context) error
	CategoryNames() observable.ReadOnly[[]string]
}

// DetailsStore is what the details screen needs from the store.
type DetailsStore interface {
	RefreshCategoryQuotes(ctx context.Context, name string) error
	CategoryQuotes() observable.ReadOnly[[]domain.Quote]
}

// ControllerOptions configures a screen controller.
type ControllerOptions struct {
	// Context is the parent of the controller's scope. Defaults to context.Background().
	Context context.Context

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o ControllerOptions) scope() *Scope {
	parent := o.Context
	if parent == nil {
		parent = context.Background()
	}

	return NewScope(parent)
}

func (o ControllerOptions) logger(screen string) *slog.Logger {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return logger.With(slog.String("screen", screen))
}

// CategoryParam is the optional category a details screen was opened with.
type CategoryParam struct {
	name string
	set  bool
}

// NoCategory is the absent parameter.
func NoCategory() CategoryParam {
	return CategoryParam{}
}

// CategoryOf is a parameter naming a category.
func CategoryOf(name string) CategoryParam {
	return CategoryParam{name: name, set: true}
}

// IsSet reports whether a category was given.
func (p CategoryParam) IsSet() bool {
	return p.set
}

// Resolve returns the named category, or domain.DefaultCategory when absent.
func (p CategoryParam) Resolve() string {
	if !p.set {
		return domain.DefaultCategory
	}

	return p.name
}

// CategoryController backs the category grid. Constructing one starts a
// single refresh of the category names.
type CategoryController struct {
	store  CategoryStore
	scope  *Scope
	logger *slog.Logger
}

// NewCategoryController creates the controller and launches its fetch.
func NewCategoryController(store CategoryStore, opts ControllerOptions) *CategoryController {
	c := &CategoryController{
		store:  store,
		scope:  opts.scope(),
		logger: opts.logger("categories"),
	}

	c.logger.DebugContext(c.scope.Context(), "controller started")
	c.scope.Launch(store.RefreshCategoryNames)

	return c
}

// Categories is the store's category-name view, unchanged.
func (c *CategoryController) Categories() observable.ReadOnly[[]string] {
	return c.store.CategoryNames()
}

// Settled is closed once the launched fetch has finished.
func (c *CategoryController) Settled() <-chan struct{} {
	return c.scope.Settled()
}

// Close cancels the fetch and waits for it. No store write made on this
// controller's behalf happens after Close returns.
func (c *CategoryController) Close() {
	err := c.scope.Close()
	c.logger.Debug("controller closed", slog.Bool("fetch_failed", err != nil))
}

// DetailsController backs the quote list of one category. Constructing one
// starts a single refresh of that category's quotes.
type DetailsController struct {
	store    DetailsStore
	category string
	scope    *Scope
	logger   *slog.Logger
}

// NewDetailsController resolves param and launches the fetch for it.
func NewDetailsController(store DetailsStore, param CategoryParam, opts ControllerOptions) *DetailsController {
	category := param.Resolve()

	c := &DetailsController{
		store:    store,
		category: category,
		scope:    opts.scope(),
		logger:   opts.logger("details").With(slog.String("category", category)),
	}

	c.logger.DebugContext(c.scope.Context(), "controller started", slog.Bool("defaulted", !param.IsSet()))
	c.scope.Launch(func(ctx context.Context) error {
		return store.RefreshCategoryQuotes(ctx, category)
	})

	return c
}

// Category is the resolved category name.
func (c *DetailsController) Category() string {
	return c.category
}

// Quotes is the store's category-quotes view, unchanged.
func (c *DetailsController) Quotes() observable.ReadOnly[[]domain.Quote] {
	return c.store.CategoryQuotes()
}

// Settled is closed once the launched fetch has finished.
func (c *DetailsController) Settled() <-chan struct{} {
	return c.scope.Settled()
}

// Close cancels the fetch and waits for it.
func (c *DetailsController) Close() {
	err := c.scope.Close()
	c.logger.Debug("controller closed", slog.Bool("fetch_failed", err != nil))
}
