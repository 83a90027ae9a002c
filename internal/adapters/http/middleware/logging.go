package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-client/internal/platform/logging"
)

// ContextLogger seeds every request context with logger so later middleware
// enrich it instead of the process default. Apply it first.
func ContextLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

// Logging returns middleware that logs request start and completion.
// Health check paths (starting with /-/) and any path starting with one of
// skipPrefixes are passed through silently.
func Logging(skipPrefixes ...string) gin.HandlerFunc {
	skips := append([]string{"/-/"}, skipPrefixes...)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range skips {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		start := time.Now()

		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		ctxLogger := logging.FromContext(c.Request.Context())

		ctxLogger.Debug("request started",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		ctxLogger.Log(c.Request.Context(), level, "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}
