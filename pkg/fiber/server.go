package fiber

import (
	"fmt"
	"log"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggoFiber "github.com/swaggo/fiber-swagger"

	"github.com/aebalz/menulist-tracker/internal/config"
	"github.com/aebalz/menulist-tracker/internal/handler"
	"github.com/aebalz/menulist-tracker/internal/middleware"

	// Import docs for swagger
	_ "github.com/aebalz/menulist-tracker/docs"

	"github.com/rs/zerolog"
)

// NewFiberServer creates and configures a new Fiber application.
func NewFiberServer(cfg *config.AppConfig, h *handler.APIHandler, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(middleware.RecoverFiber())
	app.Use(middleware.RequestIDFiber())
	app.Use(middleware.LoggerFiber(logger))
	app.Use(middleware.MetricsFiber())
	app.Use(middleware.CORSFiber(cfg))
	app.Use(middleware.RateLimiterFiber(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	// Public routes
	app.Get("/health", h.Health.CheckHealthFiber)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swaggoFiber.WrapHandler)

	api := app.Group("/api")
	api.Post("/register", h.Auth.RegisterFiber)
	api.Post("/login", h.Auth.LoginFiber)

	// Everything below requires a Bearer token.
	api.Use(middleware.AuthFiber(cfg.JWTSecret))

	api.Get("/data/:day", h.Tracker.GetDayFiber)
	api.Post("/data/:day", h.Tracker.SaveDayFiber)
	api.Post("/data", h.Tracker.SaveDayFiber)
	api.Delete("/data/:day", h.Tracker.DeleteDayFiber)

	api.Post("/meals", h.Tracker.CreateMealFiber)
	api.Get("/meals/:id", h.Tracker.GetMealFiber)
	api.Put("/meals/:id", h.Tracker.UpdateMealFiber)
	api.Delete("/meals/:id", h.Tracker.DeleteMealFiber)

	api.Post("/activities", h.Tracker.CreateActivityFiber)
	api.Get("/activities/:id", h.Tracker.GetActivityFiber)
	api.Put("/activities/:id", h.Tracker.UpdateActivityFiber)
	api.Delete("/activities/:id", h.Tracker.DeleteActivityFiber)

	api.Post("/hydration", h.Tracker.CreateHydrationFiber)
	api.Get("/hydration/:id", h.Tracker.GetHydrationFiber)
	api.Put("/hydration/:id", h.Tracker.UpdateHydrationFiber)
	api.Delete("/hydration/:id", h.Tracker.DeleteHydrationFiber)

	api.Post("/fasting", h.Tracker.CreateFastingFiber)
	api.Get("/fasting/day/:day", h.Tracker.GetFastingByDateFiber)
	api.Get("/fasting/:id", h.Tracker.GetFastingFiber)
	api.Put("/fasting/:id", h.Tracker.UpdateFastingFiber)
	api.Delete("/fasting/:id", h.Tracker.DeleteFastingFiber)

	api.Get("/search", h.Tracker.SearchFiber)
	api.Get("/search-history", h.Tracker.GetSearchHistoryFiber)
	api.Post("/search-history", h.Tracker.AddSearchHistoryFiber)

	api.Get("/recipes/search", h.Nutrition.SearchRecipesFiber)
	api.Post("/recipes/analyze", h.Nutrition.AnalyzeRecipeFiber)
	api.Get("/foods/search", h.Nutrition.SearchFoodsFiber)
	api.Post("/nutrition/analyze", h.Nutrition.AnalyzeNutritionFiber)

	return app
}

// customErrorHandler for Fiber
func customErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	log.Printf("Fiber Error: %v - Path: %s", err, ctx.Path())

	return ctx.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// StartFiberServer starts the Fiber server.
func StartFiberServer(app *fiber.App, cfg *config.AppConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
	log.Printf("Starting Fiber server on %s", addr)
	return app.Listen(addr)
}
