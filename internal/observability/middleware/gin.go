package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusdine/eatery-availability/internal/observability/logging"
)

// Config controls the request middleware.
type Config struct {
	// SkipPaths are logged at debug level only (health probes, metrics).
	SkipPaths []string
}

// Gin returns a middleware that assigns a request ID, stores it on the
// request context, and emits one structured access log line per request.
func Gin(cfg Config) gin.HandlerFunc {
	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()

		requestID := logging.EnsureRequestID(c.GetHeader("X-Request-ID"))
		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)

		c.Next()

		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}

		switch {
		case skip[c.Request.URL.Path]:
			slog.DebugContext(ctx, "request", attrs...)
		case c.Writer.Status() >= http.StatusInternalServerError:
			slog.ErrorContext(ctx, "request", attrs...)
		default:
			slog.InfoContext(ctx, "request", attrs...)
		}
	}
}

// PanicRecovery converts handler panics into a 500 response with a logged
// stack-free summary, keeping one bad request from taking the process down.
func PanicRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", r),
					slog.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
