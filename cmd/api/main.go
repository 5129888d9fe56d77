package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"leadtrack-crm/internal/config"
	"leadtrack-crm/internal/handler"
	"leadtrack-crm/internal/middleware"
	"leadtrack-crm/internal/pkg/logger"
	"leadtrack-crm/internal/repository"
	"leadtrack-crm/internal/service"
	"leadtrack-crm/internal/service/email"
	"leadtrack-crm/internal/service/export"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zapLog.Sync()

	if cfg.JWTSecret == "" {
		zapLog.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		zapLog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redis.Close()

	// Object storage only backs the CSV export; the API runs without it.
	var store export.ObjectStore
	if cfg.MinIOEndpoint != "" {
		minioClient, err := config.NewMinIOClient(cfg, zapLog)
		if err != nil {
			zapLog.Warn("object storage unavailable, lead export disabled", zap.Error(err))
		} else {
			store = minioClient
		}
	}

	sender, err := email.NewSender(ctx, cfg)
	if err != nil {
		zapLog.Fatal("failed to configure email transport", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(ctx, repos, redis, store, sender, cfg, zapLog)
	handlers := handler.NewHandlers(services)
	health := handler.NewHealthHandler(map[string]handler.Check{
		"database": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		},
	})

	app := fiber.New(fiber.Config{
		AppName:      "leadtrack-crm",
		ErrorHandler: middleware.NewErrorHandler(zapLog),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Metrics())

	handler.SetupRoutes(app, handlers, health, services.Auth)

	go func() {
		zapLog.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("email_provider", sender.Provider()),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
}
