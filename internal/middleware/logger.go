package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"handyhub/internal/pkg/response"
)

// ErrorLogger logs failed requests and recovers from panics.
// Panic details go to the log only; the client gets the plain envelope.
func ErrorLogger(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logRequestError(log, c, start, "panic", fmt.Sprintf("%v", recovered),
					slog.String("stack", string(debug.Stack())))
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
				c.Abort()
				return
			}

			if len(c.Errors) == 0 {
				if c.Writer.Status() >= http.StatusInternalServerError {
					logRequestError(log, c, start, "http_error", http.StatusText(c.Writer.Status()))
				}
				return
			}

			for _, err := range c.Errors {
				logRequestError(log, c, start, fmt.Sprintf("%v", err.Type), err.Error())
			}
		}()

		c.Next()
	}
}

// AccessLog writes one line per request.
func AccessLog(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", requestID(c),
		)
	}
}

func logRequestError(log *slog.Logger, c *gin.Context, start time.Time, errType, message string, extra ...any) {
	attrs := []any{
		"type", errType,
		"status", c.Writer.Status(),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"query", c.Request.URL.RawQuery,
		"client_ip", c.ClientIP(),
		"user_id", c.GetInt64(ctxUserID),
		"role", c.GetString(ctxRole),
		"request_id", requestID(c),
		"latency", time.Since(start),
		"error", message,
	}
	log.Error("request_error", append(attrs, extra...)...)
}
