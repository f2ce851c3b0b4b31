package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is echoed back on every response and honored on the
	// way in so upstream proxies can correlate logs.
	RequestIDHeader = "X-Request-Id"

	requestIDKey = "request_id"
)

// RequestID assigns each request a correlation id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the request's correlation id, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
