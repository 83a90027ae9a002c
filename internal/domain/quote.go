// Package domain contains core business entities and rules.
package domain

// DefaultCategory is the category shown by the details screen when no
// category was passed in by navigation.
const DefaultCategory = "Life"

// Quote represents a quotation belonging to a category.
// This is a domain entity - it has no knowledge of external systems.
// Quotes are values: two quotes with the same fields are the same quote.
type Quote struct {
	// Author is who said or wrote the quote.
	Author string

	// Category is the name of the group the quote is listed under.
	Category string

	// CategoryImage is the URL of the artwork for the quote's category.
	CategoryImage string

	// Text is the quotation itself.
	Text string
}

// DistinctCategories returns names with duplicates removed, keeping the
// first occurrence of each name in its original position.
func DistinctCategories(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	return out
}
