package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fakeguard/fakeguard/internal/dashboard"
	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("alert not found")

type AlertService struct {
	db *gorm.DB
}

func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db}
}

func (s *AlertService) List(f dto.AlertFilter) ([]models.Alert, int64, error) {
	var alerts []models.Alert
	var total int64

	query := s.db.Model(&models.Alert{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Level != "" {
		query = query.Where("alert_level = ?", f.Level)
	}
	if f.Platform != "" {
		query = query.Where("platform = ?", f.Platform)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := clampPage(f.Limit, f.Offset)
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&alerts).Error; err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

func (s *AlertService) Get(id uuid.UUID) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return &alert, nil
}

func (s *AlertService) UpdateStatus(id uuid.UUID, status models.AlertStatus) (*models.Alert, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	result := s.db.Model(&models.Alert{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlertNotFound
	}
	return s.Get(id)
}

// RaiseFromAnalysis stores an alert for a high-risk profile unless one is
// already open for the same account. The bool reports whether a new row was written.
func (s *AlertService) RaiseFromAnalysis(result *dto.AnalysisResult, profileURL string) (*models.Alert, bool, error) {
	var existing models.Alert
	err := s.db.
		Where("LOWER(username) = ? AND platform = ? AND status IN ?", strings.ToLower(result.Username), result.Platform,
			[]models.AlertStatus{models.AlertNew, models.AlertInvestigating}).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	var triggered []string
	for _, ind := range result.Indicators {
		if ind.Triggered {
			triggered = append(triggered, ind.Key)
		}
	}

	alert := models.Alert{
		Profile: models.ProfileRef{
			Username:   result.Username,
			Platform:   result.Platform,
			ProfileURL: profileURL,
		},
		AlertLevel:  result.RiskLevel,
		Status:      models.AlertNew,
		RiskScore:   result.RiskScore,
		Title:       fmt.Sprintf("Suspicious %s profile @%s", result.Platform, result.Username),
		Description: fmt.Sprintf("Profile analysis scored %d/100 with %d triggered indicators.", result.RiskScore, len(triggered)),
		Indicators:  triggered,
		Source:      "analysis",
	}
	if err := s.db.Create(&alert).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create alert: %w", err)
	}
	return &alert, true, nil
}

// SeedDemoAlerts fills an empty alerts table with n generated alerts so the
// dashboard has something to show on a fresh install.
func (s *AlertService) SeedDemoAlerts(n int, seed int64) (int, error) {
	if n <= 0 {
		return 0, nil
	}

	var count int64
	if err := s.db.Model(&models.Alert{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	alerts := dashboard.New(seed, time.Now()).SecurityAlerts(n)
	for i := range alerts {
		alerts[i].Source = "seed"
	}
	if err := s.db.CreateInBatches(&alerts, 50).Error; err != nil {
		return 0, fmt.Errorf("failed to seed alerts: %w", err)
	}

	slog.Info("seeded demo alerts", "count", len(alerts))
	return len(alerts), nil
}
