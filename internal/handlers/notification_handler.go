package handlers

import (
	"errors"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/middleware"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	requestedBy := middleware.Requester(c)
	if requestedBy == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	n, err := h.notifications.Create(requestedBy, &req)
	if err != nil {
		return validationOr(c, err, "notification.create")
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	filter := services.NotificationFilter{
		Status:   models.NotificationStatus(strings.ToLower(c.Query("status"))),
		Platform: models.Platform(strings.ToLower(c.Query("platform"))),
		Limit:    c.QueryInt("limit", services.DefaultPageSize),
		Offset:   c.QueryInt("offset", 0),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid status filter")
	}

	items, total, err := h.notifications.List(filter)
	if err != nil {
		return internalError(c, err, "notification.list")
	}

	limit, offset := pageEcho(filter.Limit, filter.Offset)
	return c.JSON(dto.NotificationListResponse{Notifications: items, Total: total, Limit: limit, Offset: offset})
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	n, err := h.notifications.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "Notification not found")
		}
		return internalError(c, err, "notification.get")
	}
	return c.JSON(n)
}

func (h *NotificationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	var req dto.UpdateNotificationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	n, err := h.notifications.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrNotificationNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Notification not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		}
		return internalError(c, err, "notification.update_status")
	}
	return c.JSON(n)
}
