// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-client/internal/domain"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details holds field-level messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeForbidden   = "FORBIDDEN"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal    = "INTERNAL_ERROR"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeBadRequest  = "BAD_REQUEST"
)

// ContextKeyTraceID is the gin context key checked by GetTraceID when no
// span is active.
const ContextKeyTraceID = "trace_id"

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.Error.Details = details

	return resp
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeForbidden:
		return http.StatusForbidden
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GetTraceID returns the ID to quote back to a client in an error envelope:
// the active span's trace ID, else a "trace_id" set on the gin context,
// else the inbound X-Request-ID.
func GetTraceID(c *gin.Context) string {
	if c.Request != nil {
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			return sc.TraceID().String()
		}
	}

	if id, ok := c.Get(ContextKeyTraceID); ok {
		s, _ := id.(string)
		return s
	}

	if c.Request != nil {
		return c.Request.Header.Get("X-Request-ID")
	}

	return ""
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusOK, nil

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
		}

		return http.StatusBadRequest, resp

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err), domain.IsDecode(err):
		// Upstream detail stays in the logs.
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable,
			"quotes source temporarily unavailable")

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal,
			"an internal error occurred")
	}
}

// HandleError writes the error envelope for err and aborts the chain.
// Server-side failures are logged with the original error.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	if resp == nil {
		return
	}

	resp.WithTraceID(GetTraceID(c))

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("request failed",
			slog.Int("status", status),
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.AbortWithStatusJSON(status, resp)
}

// HandleValidationError writes a 400 response for a binding or validation failure.
func HandleValidationError(c *gin.Context, err error) {
	resp := NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", ValidationErrors(err))
	if errors.Is(err, ErrBinding) && len(resp.Error.Details) == 0 {
		resp.Error.Code = ErrorCodeBadRequest
		resp.Error.Message = "malformed request"
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, resp.WithTraceID(GetTraceID(c)))
}
