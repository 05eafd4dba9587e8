package handlers

import (
	"errors"
	"log/slog"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// validationOr answers 400 with per-field messages for validation failures and
// 500 for anything else.
func validationOr(c *fiber.Ctx, err error, action string) error {
	var fe dto.FieldErrors
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed", Fields: fe,
		})
	}
	return internalError(c, err, action)
}

func internalError(c *fiber.Ctx, err error, action string) error {
	slog.Error("request failed",
		"action", action,
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"path", c.Path(),
		"error", err,
	)
	return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
}

func parseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
