package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-client/internal/domain"
)

const maxErrorBodyBytes = 4 << 10

// ErrorResponse is the body JSONBin sends with a non-2xx status.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ParseErrorResponse reads a JSONBin error body. It returns nil when the
// body is missing, not JSON, or carries no message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var parsed ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBodyBytes)).Decode(&parsed); err != nil || parsed.Message == "" {
		return nil
	}

	return &parsed
}

// statusReasons are the messages used when JSONBin sends no error body.
var statusReasons = map[int]string{
	http.StatusUnauthorized:       "authentication required",
	http.StatusForbidden:          "access denied",
	http.StatusTooManyRequests:    "rate limit exceeded",
	http.StatusServiceUnavailable: "service temporarily unavailable",
}

// failedExchange names one JSONBin read that did not yield a 2xx response.
type failedExchange struct {
	service   string
	operation string
	binID     string
}

// MapHTTPError turns the outcome of a JSONBin request into a domain error.
// resp may be nil when clientErr is set. binID is reported by NotFoundError.
//
// A cancelled context is returned wrapped rather than mapped, so the store
// can tell an abandoned fetch from an unreachable host. A 2xx maps to nil.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, binID string) error {
	x := failedExchange{service: serviceName, operation: operation, binID: binID}

	switch {
	case clientErr != nil:
		return x.fromClient(clientErr)
	case resp == nil:
		return domain.NewUnavailableError(serviceName, "no response received")
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	}

	return x.fromStatus(resp.StatusCode, ParseErrorResponse(resp.Body))
}

func (x failedExchange) fromClient(err error) error {
	var reason string

	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w", x.operation, err)
	case errors.Is(err, clients.ErrCircuitOpen):
		reason = "circuit breaker open during " + x.operation
	case errors.Is(err, context.DeadlineExceeded):
		reason = x.operation + " timed out"
	default:
		reason = fmt.Sprintf("%s failed: %v", x.operation, err)
	}

	return domain.NewUnavailableError(x.service, reason)
}

func (x failedExchange) fromStatus(status int, body *ErrorResponse) error {
	reason, ok := statusReasons[status]
	if !ok {
		reason = fmt.Sprintf("%s failed with status %d", x.operation, status)
	}

	if body != nil {
		reason = body.Message
	}

	switch {
	case status == http.StatusNotFound:
		return domain.NewNotFoundError("bin", x.binID)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewForbiddenError(x.operation, reason)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return domain.NewUnavailableError(x.service, reason)
	default:
		// Any other status means JSONBin rejected the request as built.
		return domain.NewValidationError("", reason)
	}
}
