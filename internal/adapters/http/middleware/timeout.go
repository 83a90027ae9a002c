package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// Timeout returns middleware that sets a request deadline.
// Handlers must honor ctx.Done(); when one returns after the deadline
// without writing anything, a 504 error envelope is sent for it.
// Paths starting with one of skipPrefixes (long-lived streams) get no deadline.
func Timeout(timeout time.Duration, skipPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		traceID := dto.GetTraceID(c)

		logging.FromContext(ctx).Warn("request timeout",
			slog.String("path", c.Request.URL.Path),
			slog.String("method", c.Request.Method),
			slog.Duration("timeout", timeout),
			slog.String("trace_id", traceID),
		)

		c.AbortWithStatusJSON(http.StatusGatewayTimeout,
			dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded").WithTraceID(traceID))
	}
}
