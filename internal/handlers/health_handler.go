package handlers

import (
	"time"

	"github.com/fakeguard/fakeguard/internal/cache"
	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	pingDB func() error
	cache  cache.Cache
}

func NewHealthHandler(pingDB func() error, c cache.Cache) *HealthHandler {
	return &HealthHandler{pingDB: pingDB, cache: c}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"

	dbStatus := "ok"
	if err := h.pingDB(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = h.cache.Name() + ": ok"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			cacheStatus = h.cache.Name() + ": unhealthy: " + err.Error()
			status = "degraded"
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}
