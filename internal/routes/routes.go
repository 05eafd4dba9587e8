package routes

import (
	"time"

	"github.com/fakeguard/fakeguard/internal/config"
	"github.com/fakeguard/fakeguard/internal/handlers"
	"github.com/fakeguard/fakeguard/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

// Handlers groups everything the route table mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Report       *handlers.ReportHandler
	Alert        *handlers.AlertHandler
	Analysis     *handlers.AnalysisHandler
	Notification *handlers.NotificationHandler
	Dashboard    *handlers.DashboardHandler
	Content      *handlers.ContentHandler
}

func perIP(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   true,
				"message": "Too many requests, slow down",
			})
		},
	})
}

func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, h Handlers) {
	api := app.Group("/api")

	// General API rate limit: 60 req/min per IP
	api.Use(perIP(60))

	api.Get("/health", h.Health.Check)

	// Site content (public)
	api.Get("/i18n", h.Content.Languages)
	api.Get("/i18n/:lang", h.Content.Strings)
	api.Get("/content/:lang", h.Content.Content)
	api.Get("/platforms", h.Content.Platforms)

	// Auth: 10 req/min per IP
	auth := api.Group("/auth", perIP(10))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/test-token", h.Auth.TestToken)
	auth.Post("/logout", middleware.JWTProtected(cfg), h.Auth.Logout)

	// Report submission is public but throttled hard: 5 req/min per IP
	api.Post("/report", perIP(5), middleware.OptionalJWT(cfg), h.Report.Create)

	// Analysis tools (public, like the demo site)
	api.Post("/analyze-profile", h.Analysis.AnalyzeProfile)
	api.Post("/verify-image", h.Analysis.VerifyImage)
	api.Post("/generate-report", h.Analysis.GenerateReport)

	// Dashboard widgets
	dash := api.Group("/dashboard")
	dash.Get("/security-alerts", h.Dashboard.SecurityAlerts)
	dash.Get("/cross-platform", h.Dashboard.CrossPlatform)
	dash.Get("/network-map", h.Dashboard.NetworkMap)
	dash.Get("/assessment", h.Dashboard.Assessment)
	dash.Get("/threat-intel", h.Dashboard.ThreatIntel)

	// Protected routes (JWT required), applied per route so public routes stay public
	jwt := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(db, cfg)

	api.Get("/reports", jwt, h.Report.List)
	api.Put("/reports/:id", jwt, admin, h.Report.UpdateStatus)

	api.Get("/alerts", jwt, h.Alert.List)
	api.Get("/alerts/:id", jwt, h.Alert.Get)
	api.Put("/alerts/:id/status", jwt, admin, h.Alert.UpdateStatus)

	api.Post("/notifications", jwt, h.Notification.Create)
	api.Get("/notifications", jwt, h.Notification.List)
	api.Get("/notifications/:id", jwt, h.Notification.Get)
	api.Put("/notifications/:id", jwt, admin, h.Notification.UpdateStatus)
}
