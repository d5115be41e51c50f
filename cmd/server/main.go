package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aebalz/menulist-tracker/docs" // Swagger docs
	"github.com/aebalz/menulist-tracker/internal/config"
	"github.com/aebalz/menulist-tracker/internal/handler"
	"github.com/aebalz/menulist-tracker/internal/provider/nutritionix"
	"github.com/aebalz/menulist-tracker/internal/provider/spoonacular"
	"github.com/aebalz/menulist-tracker/internal/repository"
	"github.com/aebalz/menulist-tracker/internal/service"
	"github.com/aebalz/menulist-tracker/pkg/database"
	fiberserver "github.com/aebalz/menulist-tracker/pkg/fiber"
	ginserver "github.com/aebalz/menulist-tracker/pkg/gin"
)

// @title MenuList Tracker API
// @version 1.0
// @description Personal food and fitness tracking API with meal, activity, hydration and fasting logs.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	logger := newLogger(cfg)
	logger.Info().Str("framework", cfg.ServerFramework).Str("env", cfg.AppEnv).Msg("starting")

	// Update Swagger info based on config
	docs.SwaggerInfo.Host = cfg.SwaggerHost
	docs.SwaggerInfo.BasePath = cfg.SwaggerBasePath
	docs.SwaggerInfo.Schemes = cfg.SwaggerSchemes
	docs.SwaggerInfo.Title = cfg.AppName + " API"

	// Connect to database
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	// Run migrations
	if err := database.MigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize dependencies (Repository, Service, Handler)
	userRepo := repository.NewUserRepository(db)
	trackerRepo := repository.NewTrackerRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	trackerSvc := service.NewTrackerService(trackerRepo)

	upstreamClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	spoonClient := &spoonacular.Client{APIKey: cfg.SpoonacularAPIKey, HTTPClient: upstreamClient}
	nutriClient := &nutritionix.Client{AppID: cfg.NutritionixAppID, APIKey: cfg.NutritionixAPIKey, HTTPClient: upstreamClient}

	apiHandler := &handler.APIHandler{
		Auth:      handler.NewAuthHandler(authSvc),
		Tracker:   handler.NewTrackerHandler(trackerSvc),
		Nutrition: handler.NewNutritionHandler(spoonClient, nutriClient),
		Health:    handler.NewHealthHandler(db),
	}

	// Graceful shutdown channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start the selected server
	switch cfg.ServerFramework {
	case "fiber":
		fiberApp := fiberserver.NewFiberServer(cfg, apiHandler, logger)
		go func() {
			if err := fiberserver.StartFiberServer(fiberApp, cfg); err != nil {
				log.Fatalf("Failed to start Fiber server: %v", err)
			}
		}()
		<-quit
		log.Println("Shutting down Fiber server...")
		if err := fiberApp.Shutdown(); err != nil {
			log.Printf("Error during Fiber server shutdown: %v", err)
		}
	case "gin":
		ginEngine := ginserver.NewGinServer(cfg, apiHandler, logger)
		httpServer, err := ginserver.StartGinServer(ginEngine, cfg)
		if err != nil {
			log.Fatalf("Failed to start GIN server: %v", err)
		}
		<-quit
		ginserver.ShutdownGinServer(httpServer, 5*time.Second)
	default:
		log.Fatalf("Unsupported server framework: %s. Supported: 'fiber', 'gin'", cfg.ServerFramework)
	}

	log.Println("Server gracefully stopped.")
}

// newLogger builds the request logger from LOG_LEVEL and APP_ENV. Development
// gets human-readable console output, everything else stays JSON.
func newLogger(cfg *config.AppConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if cfg.AppEnv == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return out.Level(level).With().Timestamp().Str("app", cfg.AppName).Logger()
}
