package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request scoped logger to the context under "logger" and logs
// each request once it completes.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		logger := base.With(zap.String("requestID", requestID))
		c.Set("logger", logger)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", getClientIP(c)),
			zap.Duration("latency", time.Since(start)))
	}
}
