package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-client/internal/app"
	"github.com/jsamuelsen/quotes-client/internal/app/observable"
	"github.com/jsamuelsen/quotes-client/internal/domain"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// Screen routes, relative to the API group.
const (
	CategoriesPath       = "/screens/categories"
	CategoriesEventsPath = "/screens/categories/events"
	DetailsPath          = "/screens/details"
	DetailsEventsPath    = "/screens/details/events"
	QuotesPath           = "/quotes"
)

// DefaultRenderTimeout bounds the wait for a screen's first fetch.
const DefaultRenderTimeout = 15 * time.Second

// ScreensStore is the store surface the screens read from.
type ScreensStore interface {
	app.CategoryStore
	app.DetailsStore
	RefreshAllQuotes(ctx context.Context) error
	Quotes() observable.ReadOnly[[]domain.Quote]
}

// ScreensConfig contains the screens handler's dependencies.
type ScreensConfig struct {
	Store ScreensStore

	// BasePath is the API group prefix, used to build selection links.
	BasePath string

	// RenderTimeout defaults to DefaultRenderTimeout.
	RenderTimeout time.Duration
}

// ScreensHandler serves the category grid and the details list.
//
// Every request opens a controller for its screen and closes it when the
// response is done, so each view triggers exactly one fetch. One-shot
// screens render once the fetch settles or RenderTimeout passes, showing
// whatever the cache holds at that point. Event routes stream every cache
// emission until the client disconnects.
type ScreensHandler struct {
	store         ScreensStore
	detailsHref   string
	renderTimeout time.Duration

	closing   chan struct{}
	closeOnce sync.Once
}

// NewScreensHandler creates a screens handler. Panics if Store is nil.
func NewScreensHandler(cfg ScreensConfig) *ScreensHandler {
	if cfg.Store == nil {
		panic("handlers: ScreensHandler requires a store")
	}

	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}

	return &ScreensHandler{
		store:         cfg.Store,
		detailsHref:   cfg.BasePath + DetailsPath,
		renderTimeout: timeout,
		closing:       make(chan struct{}),
	}
}

// Close ends every open event stream. One-shot screens are unaffected.
func (h *ScreensHandler) Close() {
	h.closeOnce.Do(func() { close(h.closing) })
}

// RegisterRoutes registers the screen routes on rg.
func (h *ScreensHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(CategoriesPath, h.Categories)
	rg.GET(CategoriesEventsPath, h.CategoryEvents)
	rg.GET(DetailsPath, h.Details)
	rg.GET(DetailsEventsPath, h.DetailsEvents)
	rg.GET(QuotesPath, h.AllQuotes)
}

// Categories handles GET /screens/categories.
func (h *ScreensHandler) Categories(c *gin.Context) {
	ctrl := app.NewCategoryController(h.store, h.controllerOptions(c))
	defer ctrl.Close()

	if !h.awaitSettled(c, ctrl.Settled()) {
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryGridResponse(ctrl.Categories().Value(), h.detailsHref))
}

// CategoryEvents handles GET /screens/categories/events.
func (h *ScreensHandler) CategoryEvents(c *gin.Context) {
	ctrl := app.NewCategoryController(h.store, h.controllerOptions(c))
	defer ctrl.Close()

	stream(c, h.closing, "categories", ctrl.Categories().Subscribe(c.Request.Context()), func(names []string) any {
		return dto.NewCategoryGridResponse(names, h.detailsHref)
	})
}

// Details handles GET /screens/details[?category=<name>].
func (h *ScreensHandler) Details(c *gin.Context) {
	param, ok := detailsParam(c)
	if !ok {
		return
	}

	ctrl := app.NewDetailsController(h.store, param, h.controllerOptions(c))
	defer ctrl.Close()

	if !h.awaitSettled(c, ctrl.Settled()) {
		return
	}

	c.JSON(http.StatusOK, dto.NewDetailsResponse(ctrl.Category(), ctrl.Quotes().Value()))
}

// DetailsEvents handles GET /screens/details/events[?category=<name>].
func (h *ScreensHandler) DetailsEvents(c *gin.Context) {
	param, ok := detailsParam(c)
	if !ok {
		return
	}

	ctrl := app.NewDetailsController(h.store, param, h.controllerOptions(c))
	defer ctrl.Close()

	category := ctrl.Category()

	stream(c, h.closing, "details", ctrl.Quotes().Subscribe(c.Request.Context()), func(quotes []domain.Quote) any {
		return dto.NewDetailsResponse(category, quotes)
	})
}

// AllQuotes handles GET /quotes. It refreshes the all-quotes cache and
// renders it; a failed refresh renders the previous contents.
func (h *ScreensHandler) AllQuotes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.renderTimeout)
	defer cancel()

	_ = h.store.RefreshAllQuotes(ctx)

	if c.Request.Context().Err() != nil {
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, dto.QuotesResponse{Quotes: dto.NewQuoteResponses(h.store.Quotes().Value())})
}

func (h *ScreensHandler) controllerOptions(c *gin.Context) app.ControllerOptions {
	return app.ControllerOptions{
		Context: c.Request.Context(),
		Logger:  logging.FromContext(c.Request.Context()),
	}
}

// awaitSettled waits for the first fetch or the render timeout. It returns
// false when the client went away first.
func (h *ScreensHandler) awaitSettled(c *gin.Context, settled <-chan struct{}) bool {
	timer := time.NewTimer(h.renderTimeout)
	defer timer.Stop()

	select {
	case <-settled:
	case <-timer.C:
		logging.FromContext(c.Request.Context()).Warn("rendering before first fetch settled",
			slog.Duration("render_timeout", h.renderTimeout))
	case <-c.Request.Context().Done():
		c.Abort()
		return false
	}

	return true
}

// detailsParam reads the optional category. An absent parameter selects the
// default category; a present but empty one is rejected.
func detailsParam(c *gin.Context) (app.CategoryParam, bool) {
	var query dto.DetailsQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleValidationError(c, err)
		return app.CategoryParam{}, false
	}

	if _, present := c.GetQuery("category"); !present {
		return app.NoCategory(), true
	}

	if query.Category == "" {
		dto.HandleError(c, domain.NewValidationError("category", "must not be empty"))
		return app.CategoryParam{}, false
	}

	return app.CategoryOf(query.Category), true
}

// stream writes each value from updates as a server-sent event until the
// channel closes, which happens when the request context ends, or closing
// is closed.
func stream[T any](c *gin.Context, closing <-chan struct{}, event string, updates <-chan T, render func(T) any) {
	// Streams outlive the server's write timeout.
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		logging.FromContext(c.Request.Context()).Debug("event stream keeps the server write deadline",
			slog.String("event", event),
			slog.Any("error", err))
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for {
		select {
		case value, ok := <-updates:
			if !ok {
				return
			}

			c.SSEvent(event, render(value))
			c.Writer.Flush()
		case <-closing:
			return
		}
	}
}
