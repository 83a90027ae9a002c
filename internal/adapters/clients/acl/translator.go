package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-client/internal/domain"
)

// maxBodyBytes bounds a decoded response body.
const maxBodyBytes = 8 << 20

// errBodyTooLarge is wrapped in a DecodeError when a body exceeds maxBodyBytes.
var errBodyTooLarge = errors.New("response body too large")

// validate checks wire DTOs after decoding.
var validate = validator.New(validator.WithRequiredStructEnabled())

// BaseAdapter provides common functionality for ACL adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Get performs a GET request and returns the response body on 2xx.
// The caller must close the body. Any other outcome is a mapped domain error.
func (a *BaseAdapter) Get(ctx context.Context, path string, header http.Header, operation, entityID string) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path, header)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation, entityID)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, entityID)
	}

	return resp.Body, nil
}

// DecodeResponse reads a JSON body into the target type and closes it.
// The whole body must be a single JSON value. Failures are domain.DecodeError
// naming target, except a cancelled read which is returned as is.
func DecodeResponse[T any](ctx context.Context, body io.ReadCloser, serviceName, target string) (T, error) {
	var result T

	if body == nil {
		return result, domain.NewDecodeError(serviceName, target, errors.New("response body is nil"))
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}

		return result, domain.NewUnavailableError(serviceName, fmt.Sprintf("reading %s: %v", target, err))
	}

	if len(data) > maxBodyBytes {
		return result, domain.NewDecodeError(serviceName, target, errBodyTooLarge)
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, domain.NewDecodeError(serviceName, target, err)
	}

	return result, nil
}

// Translator converts an external DTO to a domain value, validating it on the way.
type Translator[External any, Domain any] func(ext External) (Domain, error)

// TranslateSlice applies a translator function to a slice of external DTOs.
// If any translation fails, returns the first error encountered.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
