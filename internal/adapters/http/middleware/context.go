package middleware

import (
	"context"
	"net/http"
)

type requestIDsKey struct{}

// requestIDs are the caller identifiers forwarded on every JSONBin request
// made while serving a screen.
type requestIDs struct {
	request     string
	correlation string
}

func idsFrom(ctx context.Context) requestIDs {
	if ctx == nil {
		return requestIDs{}
	}

	ids, _ := ctx.Value(requestIDsKey{}).(requestIDs)

	return ids
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).request
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).correlation
}

// ContextWithRequestID stores the request ID, keeping any correlation ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.request = id

	return context.WithValue(ctx, requestIDsKey{}, ids)
}

// ContextWithCorrelationID stores the correlation ID, keeping any request ID.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.correlation = id

	return context.WithValue(ctx, requestIDsKey{}, ids)
}

// ForwardIDs sets the request and correlation ID headers on h for the IDs
// present in ctx. Absent IDs leave h untouched.
func ForwardIDs(ctx context.Context, h http.Header) {
	ids := idsFrom(ctx)

	if ids.request != "" {
		h.Set(HeaderRequestID, ids.request)
	}

	if ids.correlation != "" {
		h.Set(HeaderCorrelationID, ids.correlation)
	}
}
