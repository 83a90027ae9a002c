package acl

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsamuelsen/quotes-client/internal/domain"
)

// CategoryNamesFilter selects the category of every quote, duplicates included.
const CategoryNamesFilter = "quotes..category"

// filterEscaper escapes the characters that would end or corrupt a
// double-quoted JSONPath string literal.
var filterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// CategoryFilter returns the filter selecting the quotes whose category is name.
// Names that cannot travel in an HTTP header are rejected with a
// domain.ValidationError.
func CategoryFilter(name string) (string, error) {
	if name == "" {
		return "", domain.NewValidationError("category", "is required")
	}

	if !utf8.ValidString(name) {
		return "", domain.NewValidationError("category", "must be valid UTF-8")
	}

	if strings.ContainsFunc(name, unicode.IsControl) {
		return "", domain.NewValidationErrorWithValue("category", "must not contain control characters", name)
	}

	return fmt.Sprintf(`quotes[?(@.category=="%s")]`, filterEscaper.Replace(name)), nil
}
