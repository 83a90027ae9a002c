package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-client/internal/domain"
	"github.com/jsamuelsen/quotes-client/internal/platform/config"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// JSONBin constants for the published quotes document.
const (
	DefaultBaseURL      = config.DefaultJSONBinBaseURL
	DefaultBinID        = config.DefaultJSONBinBinID
	DefaultFilterHeader = config.DefaultJSONBinFilterHeader
)

// QuotesClientConfig contains configuration for the quotes client.
type QuotesClientConfig struct {
	// Client is the HTTP client to use for requests.
	// Its BaseURL should point at the JSONBin API host.
	Client *clients.Client

	// BinID identifies the document. Defaults to DefaultBinID.
	BinID string

	// FilterHeader names the header carrying the JSONPath filter.
	// Defaults to DefaultFilterHeader.
	FilterHeader string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuotesClient reads the quotes document from JSONBin.
// Each method is one GET of the same bin; only the filter header differs.
type QuotesClient struct {
	BaseAdapter

	binID        string
	filterHeader string
	logger       *slog.Logger
}

// NewQuotesClient creates a new quotes client adapter.
// Panics if Client is nil.
func NewQuotesClient(cfg QuotesClientConfig) *QuotesClient {
	if cfg.Client == nil {
		panic("QuotesClient: Client is required")
	}

	binID := cfg.BinID
	if binID == "" {
		binID = DefaultBinID
	}

	header := cfg.FilterHeader
	if header == "" {
		header = DefaultFilterHeader
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuotesClient{
		BaseAdapter:  NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		binID:        binID,
		filterHeader: header,
		logger:       logger.With(slog.String("component", "acl.QuotesClient")),
	}
}

// wireQuote is one record of the document. Pointers tell a missing field
// from an empty one.
type wireQuote struct {
	Author        *string `json:"author"        validate:"required"`
	Category      *string `json:"category"      validate:"required"`
	CategoryImage *string `json:"categoryImage" validate:"required"`
	Text          *string `json:"text"          validate:"required"`
}

// wireDocument is the unfiltered bin body. Keys other than quotes are ignored.
type wireDocument struct {
	Quotes []json.RawMessage `json:"quotes" validate:"required"`
}

// FetchAllQuotes returns every quote in the document.
// Implements ports.QuotesSource.
func (c *QuotesClient) FetchAllQuotes(ctx context.Context) ([]domain.Quote, error) {
	const operation = "fetch all quotes"

	body, err := c.get(ctx, "", operation)
	if err != nil {
		return nil, err
	}

	doc, err := DecodeResponse[wireDocument](ctx, body, c.ServiceName(), "quotes document")
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(doc); err != nil {
		return nil, domain.NewDecodeError(c.ServiceName(), "quotes document", err)
	}

	return c.translateQuotes(ctx, doc.Quotes)
}

// FetchQuotesByCategory returns the quotes whose category equals name.
// Implements ports.QuotesSource.
func (c *QuotesClient) FetchQuotesByCategory(ctx context.Context, name string) ([]domain.Quote, error) {
	const operation = "fetch category quotes"

	filter, err := CategoryFilter(name)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, filter, operation)
	if err != nil {
		return nil, err
	}

	raws, err := DecodeResponse[[]json.RawMessage](ctx, body, c.ServiceName(), "category quotes")
	if err != nil {
		return nil, err
	}

	return c.translateQuotes(ctx, raws)
}

// FetchCategoryNames returns the category of every quote, duplicates included.
// Implements ports.QuotesSource.
func (c *QuotesClient) FetchCategoryNames(ctx context.Context) ([]string, error) {
	const operation = "fetch category names"

	body, err := c.get(ctx, CategoryNamesFilter, operation)
	if err != nil {
		return nil, err
	}

	raw, err := DecodeResponse[[]*string](ctx, body, c.ServiceName(), "category names")
	if err != nil {
		return nil, err
	}

	names := make([]string, len(raw))
	for i, name := range raw {
		if name == nil {
			return nil, domain.NewDecodeError(c.ServiceName(), "category names",
				fmt.Errorf("element %d is null", i))
		}

		names[i] = *name
	}

	c.logger.Log(ctx, logging.LevelTrace, "decoded category names", slog.Int("count", len(names)))

	return names, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuotesClient) Name() string {
	return c.ServiceName()
}

// Check verifies the bin can be read, using the smallest filtered view.
// Implements ports.HealthChecker.
func (c *QuotesClient) Check(ctx context.Context) error {
	if state := c.Client().CircuitState(); state == clients.StateOpen {
		return fmt.Errorf("%s: %w", c.ServiceName(), clients.ErrCircuitOpen)
	}

	body, err := c.get(ctx, CategoryNamesFilter, "health check")
	if err != nil {
		return err
	}

	return body.Close()
}

func (c *QuotesClient) get(ctx context.Context, filter, operation string) (io.ReadCloser, error) {
	var header http.Header
	if filter != "" {
		header = http.Header{}
		header.Set(c.filterHeader, filter)
	}

	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("operation", operation),
		slog.String("filter", filter))

	body, err := c.Get(ctx, c.path(), header, operation, c.binID)
	if err != nil {
		logging.FromContext(ctx).DebugContext(ctx, "quotes request failed",
			slog.String("operation", operation),
			slog.Any("error", err))

		return nil, err
	}

	return body, nil
}

func (c *QuotesClient) path() string {
	return "/v3/b/" + c.binID + "?meta=false"
}

func (c *QuotesClient) translateQuotes(ctx context.Context, raws []json.RawMessage) ([]domain.Quote, error) {
	quotes, err := TranslateSlice(raws, c.translateToDomain)
	if err != nil {
		return nil, domain.NewDecodeError(c.ServiceName(), "quote record", err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated wire records to domain", slog.Int("count", len(quotes)))

	return quotes, nil
}

// translateToDomain decodes one record strictly: unknown fields and missing
// fields both fail.
func (c *QuotesClient) translateToDomain(raw json.RawMessage) (domain.Quote, error) {
	var ext wireQuote

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&ext); err != nil {
		return domain.Quote{}, err
	}

	if err := validate.Struct(ext); err != nil {
		return domain.Quote{}, err
	}

	return domain.Quote{
		Author:        *ext.Author,
		Category:      *ext.Category,
		CategoryImage: *ext.CategoryImage,
		Text:          *ext.Text,
	}, nil
}
