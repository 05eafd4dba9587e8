package handlers

import (
	"errors"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) List(c *fiber.Ctx) error {
	filter := dto.AlertFilter{
		Status:   models.AlertStatus(strings.ToLower(c.Query("status"))),
		Level:    models.AlertLevel(strings.ToLower(c.Query("level"))),
		Platform: models.Platform(strings.ToLower(c.Query("platform"))),
		Limit:    c.QueryInt("limit", services.DefaultPageSize),
		Offset:   c.QueryInt("offset", 0),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid status filter")
	}
	if filter.Level != "" && !filter.Level.ValidForAlert() {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid level filter")
	}

	alerts, total, err := h.alertService.List(filter)
	if err != nil {
		return internalError(c, err, "alert.list")
	}

	limit, offset := pageEcho(filter.Limit, filter.Offset)
	return c.JSON(dto.AlertListResponse{Alerts: alerts, Total: total, Limit: limit, Offset: offset})
}

func (h *AlertHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid alert ID")
	}

	alert, err := h.alertService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Alert not found")
		}
		return internalError(c, err, "alert.get")
	}
	return c.JSON(alert)
}

func (h *AlertHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid alert ID")
	}

	var req dto.UpdateAlertStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	alert, err := h.alertService.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrAlertNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Alert not found")
		}
		return internalError(c, err, "alert.update_status")
	}
	return c.JSON(alert)
}
