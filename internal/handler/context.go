package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/menulist-tracker/internal/middleware"
)

// userIDFiber returns the owner id the auth middleware stored for this request.
func userIDFiber(c *fiber.Ctx) uint {
	id, _ := c.Locals(middleware.UserIDKey).(uint)
	return id
}

// userIDGin returns the owner id the auth middleware stored for this request.
func userIDGin(c *gin.Context) uint {
	v, _ := c.Get(middleware.UserIDKey)
	id, _ := v.(uint)
	return id
}

// parseID parses a numeric path parameter.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
