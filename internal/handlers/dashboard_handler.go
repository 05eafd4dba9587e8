package handlers

import (
	"strconv"
	"time"

	"github.com/fakeguard/fakeguard/internal/dashboard"
	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the generated widget data. Every response carries the
// seed it was built from; sending it back reproduces the same data.
type DashboardHandler struct {
	now func() time.Time
}

// NewDashboardHandler uses now to anchor generated timestamps; nil means time.Now.
func NewDashboardHandler(now func() time.Time) *DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &DashboardHandler{now: now}
}

type dashboardResponse struct {
	Seed int64 `json:"seed"`
	Data any   `json:"data"`
}

func (h *DashboardHandler) generator(c *fiber.Ctx) (*dashboard.Generator, int64, error) {
	seed := h.now().UnixNano()
	if raw := c.Query("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, fiber.NewError(fiber.StatusBadRequest, "seed must be an integer")
		}
		seed = parsed
	}
	return dashboard.New(seed, h.now()), seed, nil
}

func (h *DashboardHandler) SecurityAlerts(c *fiber.Ctx) error {
	g, seed, err := h.generator(c)
	if err != nil {
		return err
	}
	return c.JSON(dashboardResponse{Seed: seed, Data: g.SecurityAlerts(c.QueryInt("count", 10))})
}

func (h *DashboardHandler) CrossPlatform(c *fiber.Ctx) error {
	g, seed, err := h.generator(c)
	if err != nil {
		return err
	}
	return c.JSON(dashboardResponse{Seed: seed, Data: g.CrossPlatform()})
}

func (h *DashboardHandler) NetworkMap(c *fiber.Ctx) error {
	g, seed, err := h.generator(c)
	if err != nil {
		return err
	}
	return c.JSON(dashboardResponse{Seed: seed, Data: g.NetworkMap(c.QueryInt("nodes", 40))})
}

func (h *DashboardHandler) Assessment(c *fiber.Ctx) error {
	g, seed, err := h.generator(c)
	if err != nil {
		return err
	}
	return c.JSON(dashboardResponse{Seed: seed, Data: g.Assessment()})
}

func (h *DashboardHandler) ThreatIntel(c *fiber.Ctx) error {
	g, seed, err := h.generator(c)
	if err != nil {
		return err
	}
	return c.JSON(dashboardResponse{Seed: seed, Data: g.ThreatIntel(c.QueryInt("days", 30))})
}
