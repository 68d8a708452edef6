package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger replaces gin's default logger with one slog record per
// request. Server errors log at ERROR, client errors at WARN.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	logger = logger.WithComponent(log.ComponentHTTP)

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		args := []any{
			log.FieldRequestID, requestID,
			log.FieldMethod, c.Request.Method,
			log.FieldPath, c.Request.URL.Path,
			log.FieldStatusCode, status,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, log.FieldError, c.Errors.String())
		}

		logger.LogLevel(c.Request.Context(), level, "request", args...)
	}
}
