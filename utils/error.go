package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Kind          string `json:"kind"`
	Message       string `json:"message"`
	Details       string `json:"details,omitempty"`
	NextAvailable any    `json:"nextAvailable,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Kind:    "Internal",
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, kind, message, details string) {
	GetLogger().Warn(message, zap.String("kind", kind), zap.String("details", details))
	c.AbortWithStatusJSON(status, ErrorResponse{Kind: kind, Message: message, Details: details})
}
