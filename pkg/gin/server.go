package gin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/aebalz/menulist-tracker/internal/config"
	"github.com/aebalz/menulist-tracker/internal/handler"
	"github.com/aebalz/menulist-tracker/internal/middleware"

	// Import docs for swagger
	_ "github.com/aebalz/menulist-tracker/docs"
)

// NewGinServer creates and configures a new Gin application.
func NewGinServer(cfg *config.AppConfig, h *handler.APIHandler, logger zerolog.Logger) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RecoverGin())
	router.Use(middleware.RequestIDGin())
	router.Use(middleware.LoggerGin(logger))
	router.Use(middleware.MetricsGin())
	router.Use(middleware.CORSGin(cfg))
	router.Use(middleware.RateLimiterGin(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	// Swagger UI
	url := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler, url))

	// Public routes
	router.GET("/health", h.Health.CheckHealthGin)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/register", h.Auth.RegisterGin)
		api.POST("/login", h.Auth.LoginGin)
	}

	// Everything below requires a Bearer token.
	protected := router.Group("/api")
	protected.Use(middleware.AuthGin(cfg.JWTSecret))
	{
		protected.GET("/data/:day", h.Tracker.GetDayGin)
		protected.POST("/data/:day", h.Tracker.SaveDayGin)
		protected.POST("/data", h.Tracker.SaveDayGin)
		protected.DELETE("/data/:day", h.Tracker.DeleteDayGin)

		protected.POST("/meals", h.Tracker.CreateMealGin)
		protected.GET("/meals/:id", h.Tracker.GetMealGin)
		protected.PUT("/meals/:id", h.Tracker.UpdateMealGin)
		protected.DELETE("/meals/:id", h.Tracker.DeleteMealGin)

		protected.POST("/activities", h.Tracker.CreateActivityGin)
		protected.GET("/activities/:id", h.Tracker.GetActivityGin)
		protected.PUT("/activities/:id", h.Tracker.UpdateActivityGin)
		protected.DELETE("/activities/:id", h.Tracker.DeleteActivityGin)

		protected.POST("/hydration", h.Tracker.CreateHydrationGin)
		protected.GET("/hydration/:id", h.Tracker.GetHydrationGin)
		protected.PUT("/hydration/:id", h.Tracker.UpdateHydrationGin)
		protected.DELETE("/hydration/:id", h.Tracker.DeleteHydrationGin)

		protected.POST("/fasting", h.Tracker.CreateFastingGin)
		protected.GET("/fasting/day/:day", h.Tracker.GetFastingByDateGin)
		protected.GET("/fasting/:id", h.Tracker.GetFastingGin)
		protected.PUT("/fasting/:id", h.Tracker.UpdateFastingGin)
		protected.DELETE("/fasting/:id", h.Tracker.DeleteFastingGin)

		protected.GET("/search", h.Tracker.SearchGin)
		protected.GET("/search-history", h.Tracker.GetSearchHistoryGin)
		protected.POST("/search-history", h.Tracker.AddSearchHistoryGin)

		protected.GET("/recipes/search", h.Nutrition.SearchRecipesGin)
		protected.POST("/recipes/analyze", h.Nutrition.AnalyzeRecipeGin)
		protected.GET("/foods/search", h.Nutrition.SearchFoodsGin)
		protected.POST("/nutrition/analyze", h.Nutrition.AnalyzeNutritionGin)
	}

	return router
}

// StartGinServer starts the Gin server.
func StartGinServer(router *gin.Engine, cfg *config.AppConfig) (*http.Server, error) {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	log.Printf("Starting GIN server on %s", addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	return srv, nil
}

// ShutdownGinServer gracefully shuts down the Gin server.
func ShutdownGinServer(srv *http.Server, timeout time.Duration) {
	log.Println("Shutting down GIN server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("GIN server exiting")
}
