package handlers

import (
	"github.com/fakeguard/fakeguard/internal/localization"
	"github.com/fakeguard/fakeguard/internal/platform"
	"github.com/gofiber/fiber/v2"
)

type ContentHandler struct {
	localizer *localization.Localizer
	platforms *platform.Registry
}

func NewContentHandler(localizer *localization.Localizer, platforms *platform.Registry) *ContentHandler {
	return &ContentHandler{localizer: localizer, platforms: platforms}
}

func (h *ContentHandler) Languages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"default":   localization.DefaultLanguage,
		"languages": h.localizer.Languages(),
	})
}

func (h *ContentHandler) Strings(c *fiber.Ctx) error {
	lang := h.localizer.Resolve(c.Params("lang"))
	return c.JSON(fiber.Map{
		"language": lang,
		"strings":  h.localizer.Strings(lang),
	})
}

func (h *ContentHandler) Content(c *fiber.Ctx) error {
	return c.JSON(h.localizer.Content(c.Params("lang")))
}

func (h *ContentHandler) Platforms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"platforms": h.platforms.All()})
}
