package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return GetLogger()
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestLogger(c).Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError aborts the request with a standardized JSON error. Server errors are logged
// at error level, client errors at warn.
func JSONError(c *gin.Context, status int, message string, details string) {
	logger := requestLogger(c).With(
		zap.Int("status", status),
		zap.String("details", details),
		zap.String("path", c.Request.URL.Path))
	if status >= http.StatusInternalServerError {
		logger.Error(message)
	} else {
		logger.Warn(message)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details})
}
