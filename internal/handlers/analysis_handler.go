package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalysisHandler struct {
	analysis *services.AnalysisService
	images   *services.ImageService
	pdf      *services.PDFService
}

func NewAnalysisHandler(analysis *services.AnalysisService, images *services.ImageService, pdf *services.PDFService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, images: images, pdf: pdf}
}

func (h *AnalysisHandler) AnalyzeProfile(c *fiber.Ctx) error {
	var req dto.AnalyzeProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := h.analysis.Analyze(c.UserContext(), &req)
	if err != nil {
		return validationOr(c, err, "analysis.profile")
	}
	return c.JSON(result)
}

// VerifyImage takes a multipart "image" file or a JSON body with base64 image_data.
func (h *AnalysisHandler) VerifyImage(c *fiber.Ctx) error {
	data, err := h.readImage(c)
	if err != nil {
		return imageError(c, err)
	}

	result, err := h.images.Verify(data)
	if err != nil {
		return imageError(c, err)
	}
	return c.JSON(result)
}

func (h *AnalysisHandler) readImage(c *fiber.Ctx) ([]byte, error) {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("image")
		if err != nil {
			return nil, services.ErrEmptyImage
		}
		if fh.Size > services.MaxImageBytes {
			return nil, services.ErrImageTooLarge
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, services.MaxImageBytes+1))
	}

	var req dto.VerifyImageRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, services.ErrInvalidImageData
	}
	return services.DecodeImageData(req.ImageData)
}

func imageError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyImage), errors.Is(err, services.ErrInvalidImageData):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrImageTooLarge):
		return errorJSON(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, services.ErrUnsupportedImage):
		return errorJSON(c, fiber.StatusUnsupportedMediaType, err.Error())
	}
	return internalError(c, err, "analysis.verify_image")
}

func (h *AnalysisHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.GenerateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	pdf, err := h.pdf.Generate(&req)
	if err != nil {
		if errors.Is(err, services.ErrAnalysisRequired) {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
		return internalError(c, err, "analysis.generate_report")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, ReportFilename(req.Analysis.Username)))
	return c.Send(pdf)
}

// ReportFilename is the download name for a profile report.
func ReportFilename(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "fakeguard-report.pdf"
	}
	return "fakeguard-report-" + b.String() + ".pdf"
}
