package dto

import (
	"net/url"

	"github.com/jsamuelsen/quotes-client/internal/domain"
)

// CategoryGridColumns is the fixed column count of the category grid.
const CategoryGridColumns = 2

// DetailsQuery is the query of the details screen. Category is optional;
// presence is decided by the handler, not by emptiness.
type DetailsQuery struct {
	Category string `form:"category" validate:"omitempty,max=128,nocontrol"`
}

// CategoryItem is one tile of the category grid. Href is the selection:
// following it opens the details screen for Name.
type CategoryItem struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

// CategoryGridResponse is the category screen.
type CategoryGridResponse struct {
	Columns int            `json:"columns"`
	Items   []CategoryItem `json:"items"`
}

// QuoteResponse is a quote as rendered on the details screen.
type QuoteResponse struct {
	Author        string `json:"author"`
	Category      string `json:"category"`
	CategoryImage string `json:"categoryImage"`
	Text          string `json:"text"`
}

// DetailsResponse is the details screen for one category.
type DetailsResponse struct {
	Category string          `json:"category"`
	Quotes   []QuoteResponse `json:"quotes"`
}

// QuotesResponse lists every quote.
type QuotesResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
}

// NewCategoryGridResponse renders category names as a grid, one tile per
// distinct name in first-seen order. detailsPath is the details screen route.
func NewCategoryGridResponse(names []string, detailsPath string) CategoryGridResponse {
	distinct := domain.DistinctCategories(names)

	items := make([]CategoryItem, 0, len(distinct))
	for _, name := range distinct {
		items = append(items, CategoryItem{
			Name: name,
			Href: detailsPath + "?" + url.Values{"category": {name}}.Encode(),
		})
	}

	return CategoryGridResponse{Columns: CategoryGridColumns, Items: items}
}

// NewDetailsResponse renders the details screen opened for category with
// the category-quotes cache as it stands.
func NewDetailsResponse(category string, quotes []domain.Quote) DetailsResponse {
	return DetailsResponse{Category: category, Quotes: NewQuoteResponses(quotes)}
}

// NewQuoteResponses converts domain quotes, never returning nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteResponse{
			Author:        q.Author,
			Category:      q.Category,
			CategoryImage: q.CategoryImage,
			Text:          q.Text,
		})
	}

	return out
}
