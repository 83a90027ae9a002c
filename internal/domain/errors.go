// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the operation is not permitted.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrDecode indicates a dependency answered with a body of unexpected shape.
	ErrDecode = errors.New("decode failed")

	// ErrEmptyResult indicates a valid response that carried no elements.
	ErrEmptyResult = errors.New("empty result")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ForbiddenError provides context for forbidden errors.
type ForbiddenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// DecodeError reports a response body that could not be turned into domain values.
type DecodeError struct {
	Service string
	Target  string
	Cause   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decoding %s from %q: %v", e.Target, e.Service, e.Cause)
	}

	return fmt.Sprintf("decoding %s from %q", e.Target, e.Service)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDecode}
	}

	return []error{ErrDecode, e.Cause}
}

// NewDecodeError creates a decode error with context.
func NewDecodeError(service, target string, cause error) error {
	return &DecodeError{Service: service, Target: target, Cause: cause}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsDecode checks if an error is a decode error.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsEmptyResult checks if an error reports an empty result.
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrEmptyResult)
}

// FailureKind names the class of a failed fetch.
type FailureKind string

// Failure kinds, ordered roughly by how far the fetch got.
const (
	FailureNone      FailureKind = "none"
	FailureCanceled  FailureKind = "canceled"
	FailureRejected  FailureKind = "rejected"
	FailureTransport FailureKind = "transport"
	FailureDecode    FailureKind = "decode"
	FailureEmpty     FailureKind = "empty"
)

// ClassifyFailure maps an error to its FailureKind.
// Anything unrecognised counts as a transport failure.
func ClassifyFailure(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, context.Canceled):
		return FailureCanceled
	case IsEmptyResult(err):
		return FailureEmpty
	case IsDecode(err):
		return FailureDecode
	case IsValidation(err):
		return FailureRejected
	default:
		return FailureTransport
	}
}
