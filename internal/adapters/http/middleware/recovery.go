package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// Recovery returns middleware that turns a panic into a 500 error envelope
// and logs it with the stack trace. Apply it right after ContextLogger.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			if r == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity, as net/http does
				panic(r)
			}

			traceID := dto.GetTraceID(c)

			logging.FromContext(c.Request.Context()).Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
		}()

		c.Next()
	}
}
