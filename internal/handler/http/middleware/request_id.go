// File: backend/services/account-security-service/internal/handler/http/middleware/request_id.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is honored when the caller already carries an id,
	// typically set by the API gateway.
	RequestIDHeader = "X-Request-ID"

	// GinContextRequestIDKey is the gin context key holding the request id.
	GinContextRequestIDKey = "requestID"
)

// RequestID ensures every request carries an id, generating one when the
// gateway did not.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(GinContextRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the request id set by RequestID, or "".
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(GinContextRequestIDKey)
}
