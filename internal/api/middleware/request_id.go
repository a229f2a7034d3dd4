package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/MiniOS/internal/shared/id"
)

// RequestIDHeader carries the request ID on responses
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID tags every request with a prefixed ULID. An incoming header is
// kept only when it is itself a well-formed request ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !validRequestID(rid) {
			rid = id.NewRequestID().String()
		}
		c.Set(requestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func validRequestID(s string) bool {
	prefix, _, err := id.Split(s)
	return err == nil && prefix == id.RequestPrefix
}
