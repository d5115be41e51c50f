package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// GinRequestIDKey is the context key holding the generated request id on the
// Gin path.
const GinRequestIDKey = "requestID"

// RequestIDFiber tags every request with an X-Request-ID header.
func RequestIDFiber() fiber.Handler {
	return requestid.New()
}

// RequestIDGin tags every request with an X-Request-ID header.
func RequestIDGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(GinRequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
