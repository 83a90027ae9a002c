// Package middleware provides HTTP middleware components for the Gin server.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// Identifier headers. A request ID names one inbound request; a correlation
// ID spans every request made on behalf of the same user action.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// Gin context keys holding the identifiers.
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

const maxInboundIDLength = 128

// idHeader describes one identifier the service accepts, echoes and forwards.
type idHeader struct {
	header string
	key    string
	// attach stores the ID on the request context, once for the logger and
	// once for the outbound JSONBin client.
	attach []func(context.Context, string) context.Context
}

var (
	requestIDHeader = idHeader{
		header: HeaderRequestID,
		key:    ContextKeyRequestID,
		attach: []func(context.Context, string) context.Context{logging.WithRequestID, ContextWithRequestID},
	}
	correlationIDHeader = idHeader{
		header: HeaderCorrelationID,
		key:    ContextKeyCorrelationID,
		attach: []func(context.Context, string) context.Context{logging.WithCorrelationID, ContextWithCorrelationID},
	}
)

// RequestID keeps a well-formed inbound X-Request-ID or generates one.
// The ID is echoed in the response and tagged on the request logger.
func RequestID() gin.HandlerFunc {
	return requestIDHeader.middleware()
}

// CorrelationID keeps a well-formed inbound X-Correlation-ID. Without one,
// this request starts the transaction and gets a fresh ID.
func CorrelationID() gin.HandlerFunc {
	return correlationIDHeader.middleware()
}

// GetRequestID returns the request ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

func (h idHeader) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(h.header)
		if !wellFormedID(id) {
			id = uuid.NewString()
		}

		c.Set(h.key, id)
		c.Header(h.header, id)

		ctx := c.Request.Context()
		for _, fn := range h.attach {
			ctx = fn(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// wellFormedID accepts short IDs of letters, digits, '-', '_' and '.'.
// Anything else is replaced before it reaches logs or outbound headers.
func wellFormedID(id string) bool {
	if id == "" || len(id) > maxInboundIDLength {
		return false
	}

	for _, r := range id {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}

	return true
}
