package services

import (
	"errors"
	"fmt"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidStatus  = errors.New("invalid status")
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ReportFilter struct {
	Status   models.ReportStatus
	Platform models.Platform
	Limit    int
	Offset   int
}

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport validates the form and stores a pending report.
func (s *ReportService) CreateReport(reporterID *uuid.UUID, req *dto.CreateReportRequest) (*models.Report, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := models.Report{
		Username:      req.Username,
		Platform:      req.Platform,
		Reason:        req.Reason,
		ScreenshotURL: req.ScreenshotURL,
		Status:        models.ReportPending,
		ReporterID:    reporterID,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func (s *ReportService) ListReports(f ReportFilter) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := s.db.Model(&models.Report{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Platform != "" {
		query = query.Where("platform = ?", f.Platform)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := clampPage(f.Limit, f.Offset)
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ReportService) GetReport(id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// UpdateStatus is the moderation step: a report can only be marked reviewed or dismissed.
func (s *ReportService) UpdateStatus(id uuid.UUID, req *dto.UpdateReportStatusRequest) (*models.Report, error) {
	if req.Status != models.ReportReviewed && req.Status != models.ReportDismissed {
		return nil, fmt.Errorf("%w: must be reviewed or dismissed", ErrInvalidStatus)
	}

	result := s.db.Model(&models.Report{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     req.Status,
			"admin_note": req.AdminNote,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrReportNotFound
	}
	return s.GetReport(id)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
