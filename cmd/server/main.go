package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/fakeguard/fakeguard/internal/cache"
	"github.com/fakeguard/fakeguard/internal/config"
	"github.com/fakeguard/fakeguard/internal/database"
	"github.com/fakeguard/fakeguard/internal/delivery"
	"github.com/fakeguard/fakeguard/internal/handlers"
	"github.com/fakeguard/fakeguard/internal/localization"
	"github.com/fakeguard/fakeguard/internal/logging"
	"github.com/fakeguard/fakeguard/internal/middleware"
	"github.com/fakeguard/fakeguard/internal/platform"
	"github.com/fakeguard/fakeguard/internal/routes"
	"github.com/fakeguard/fakeguard/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup(os.Getenv("LOG_LEVEL"))

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Platform registry
	registry, err := platform.LoadFromFile(cfg.PlatformsConfigPath)
	if err != nil {
		slog.Error("failed to load platform registry", "path", cfg.PlatformsConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("platform registry loaded", "platforms", len(registry.All()))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// ERROR+ records also go to system_logs
	dbLogHandler := logging.NewDBHandler(database.DB, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logging.ParseLevel(os.Getenv("LOG_LEVEL"))}),
		dbLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Analysis cache: redis when configured, in-process otherwise
	var analysisCache cache.Cache = cache.NewMemory()
	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisCache, err = cache.NewRedis(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			slog.Warn("redis unavailable, using in-memory cache", "error", err)
		} else {
			analysisCache = redisCache
			slog.Info("redis cache connected")
		}
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	reportService := services.NewReportService(database.DB)
	alertService := services.NewAlertService(database.DB)
	notificationService := services.NewNotificationService(database.DB)
	analysisService := services.NewAnalysisService(alertService, analysisCache, cfg.AnalysisCacheTTL, cfg.AlertRiskThreshold, registry)

	if _, err := alertService.SeedDemoAlerts(cfg.SeedDemoAlerts, time.Now().UnixNano()); err != nil {
		slog.Error("seeding demo alerts failed", "error", err)
	}

	// Notification dispatcher
	dispatcher := delivery.NewDispatcher(notificationService, registry, cfg.NotifyBatchSize)
	if cfg.TelegramBotToken != "" {
		sender, err := delivery.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			slog.Error("telegram channel disabled", "error", err)
		} else {
			dispatcher.Register(sender)
			slog.Info("telegram delivery channel enabled")
		}
	}
	dispatcher.Start(cfg.NotifyDispatchInterval)

	// Handlers
	h := routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Health:       handlers.NewHealthHandler(database.Ping, analysisCache),
		Report:       handlers.NewReportHandler(reportService),
		Alert:        handlers.NewAlertHandler(alertService),
		Analysis:     handlers.NewAnalysisHandler(analysisService, services.NewImageService(), services.NewPDFService()),
		Notification: handlers.NewNotificationHandler(notificationService),
		Dashboard:    handlers.NewDashboardHandler(time.Now),
		Content:      handlers.NewContentHandler(localization.Default(), registry),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app; base64 image uploads need headroom over the 4MB image cap
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, database.DB, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	dispatcher.Stop()
	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
