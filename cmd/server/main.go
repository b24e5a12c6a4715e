package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	_ "github.com/fitsync/fitsync/docs/api" // Swagger docs
	"github.com/fitsync/fitsync/internal/auth"
	"github.com/fitsync/fitsync/internal/config"
	"github.com/fitsync/fitsync/internal/database"
	"github.com/fitsync/fitsync/internal/handlers"
	"github.com/fitsync/fitsync/internal/logger"
	"github.com/fitsync/fitsync/internal/middleware"
	"github.com/fitsync/fitsync/internal/models"
	"github.com/fitsync/fitsync/internal/utils"
)

// @title FitSync API
// @version 1.0.0
// @description Sync backend for fitness-tracking clients: per-user JSON documents keyed by month
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatalw("failed to connect to database", "err", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Log.Fatalw("failed to run migrations", "err", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	startedAt := time.Now().UTC()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(cfg),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("fitsync")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg, Tokens: tokens}
	syncHandler := &handlers.SyncHandler{DB: db, Cfg: cfg}
	nutritionHandler := &handlers.MonthlyDataHandler{DB: db, Cfg: cfg, Kind: models.KindNutrition}
	workoutHandler := &handlers.MonthlyDataHandler{DB: db, Cfg: cfg, Kind: models.KindWorkout}
	settingsHandler := &handlers.SettingsHandler{DB: db, Cfg: cfg}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg, StartedAt: startedAt}
	adminHandler := &handlers.AdminHandler{DB: db, Cfg: cfg, StartedAt: startedAt}

	requireAuth := middleware.RequireAuth(tokens)

	api := app.Group("/api")

	// Public routes
	api.Post("/auth/register", authHandler.Register)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/health", healthHandler.Health)

	// Protected routes
	api.Get("/sync", requireAuth, syncHandler.GetSync)
	api.Post("/sync", requireAuth, syncHandler.PostSync)
	api.Get("/nutrition", requireAuth, nutritionHandler.List)
	api.Post("/nutrition/:monthKey", requireAuth, nutritionHandler.Upsert)
	api.Get("/workouts", requireAuth, workoutHandler.List)
	api.Post("/workouts/:monthKey", requireAuth, workoutHandler.Upsert)
	api.Get("/settings", requireAuth, settingsHandler.Get)
	api.Post("/settings", requireAuth, settingsHandler.Update)
	api.Get("/admin/stats", requireAuth, adminHandler.Stats)
	api.Get("/logs", requireAuth, adminHandler.Logs)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "Resource not found")
	})

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigs
		logger.Log.Infow("gracefully shutting down")
		_ = app.Shutdown()
	}()

	logger.Log.Infow("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatalw("failed to start server", "err", err)
	}

	logger.Log.Infow("server stopped")
}
