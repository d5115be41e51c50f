package middleware

import (
	"strings"

	gincors "github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/aebalz/menulist-tracker/internal/config"
)

// CORSFiber builds the CORS middleware from config. Fiber takes origins as a
// single comma-joined string.
func CORSFiber(cfg *config.AppConfig) fiber.Handler {
	return fibercors.New(fibercors.Config{
		AllowOrigins: strings.Join(cfg.CorsAllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	})
}

// CORSGin builds the CORS middleware from config.
func CORSGin(cfg *config.AppConfig) gin.HandlerFunc {
	corsConfig := gincors.DefaultConfig()
	if len(cfg.CorsAllowedOrigins) == 1 && cfg.CorsAllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CorsAllowedOrigins
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return gincors.New(corsConfig)
}
