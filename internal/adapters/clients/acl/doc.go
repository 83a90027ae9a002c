// Package acl translates between the JSONBin quotes document and domain types.
//
// Nothing JSONBin-specific leaves this package: wire records are decoded
// strictly into unexported DTOs, validated, and only then converted to
// [domain.Quote]. HTTP statuses and client failures are mapped to domain
// errors by [MapHTTPError], and malformed bodies become [domain.DecodeError].
//
// # Components
//
//   - [QuotesClient]: implements ports.QuotesSource and ports.HealthChecker
//   - [BaseAdapter]: embeddable GET-and-map helper over clients.Client
//   - [CategoryFilter]: builds the server-side JSONPath filter for one category
//   - [MapHTTPError]: status code and client error to domain error mapping
//   - [DecodeResponse]: bounded JSON decoding into a target type
//   - [TranslateSlice]: batch translation helper
//
// # Filters
//
// JSONBin evaluates a JSONPath expression sent in a request header and
// returns the matching nodes instead of the document:
//
//	quotes[?(@.category=="Success")]   quotes in one category
//	quotes..category                  the category of every quote
package acl
