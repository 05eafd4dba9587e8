package handlers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/middleware"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/fakeguard/fakeguard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create accepts a report from anyone; a valid bearer token records the reporter.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var reporterID *uuid.UUID
	if id, err := middleware.GetUserID(c); err == nil {
		reporterID = &id
	}

	report, err := h.reportService.CreateReport(reporterID, &req)
	if err != nil {
		return validationOr(c, err, "report.create")
	}

	slog.Info("report submitted", "report_id", report.ID, "platform", report.Platform)
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	filter := services.ReportFilter{
		Status:   models.ReportStatus(strings.ToLower(c.Query("status"))),
		Platform: models.Platform(strings.ToLower(c.Query("platform"))),
		Limit:    c.QueryInt("limit", services.DefaultPageSize),
		Offset:   c.QueryInt("offset", 0),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid status filter")
	}

	reports, total, err := h.reportService.ListReports(filter)
	if err != nil {
		return internalError(c, err, "report.list")
	}

	limit, offset := pageEcho(filter.Limit, filter.Offset)
	return c.JSON(dto.ReportListResponse{Reports: reports, Total: total, Limit: limit, Offset: offset})
}

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	var req dto.UpdateReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.reportService.UpdateStatus(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrReportNotFound):
			return errorJSON(c, fiber.StatusNotFound, "Report not found")
		}
		return internalError(c, err, "report.update_status")
	}

	return c.JSON(report)
}

// pageEcho mirrors the clamping the services apply so list responses report the effective page.
func pageEcho(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = services.DefaultPageSize
	}
	if limit > services.MaxPageSize {
		limit = services.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
