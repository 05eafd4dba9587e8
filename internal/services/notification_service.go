package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fakeguard/fakeguard/internal/dto"
	"github.com/fakeguard/fakeguard/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
)

type NotificationFilter struct {
	Status   models.NotificationStatus
	Platform models.Platform
	Limit    int
	Offset   int
}

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Create(requestedBy string, req *dto.CreateNotificationRequest) (*models.PlatformNotification, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	evidence := datatypes.JSON(req.Evidence)
	if len(evidence) == 0 {
		evidence = datatypes.JSON("{}")
	}

	n := models.PlatformNotification{
		Username:         req.Username,
		Platform:         req.Platform,
		Evidence:         evidence,
		AlertLevel:       req.AlertLevel,
		RequestedBy:      requestedBy,
		Status:           models.NotificationPending,
		PlatformResponse: datatypes.JSON("{}"),
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

func (s *NotificationService) List(f NotificationFilter) ([]models.PlatformNotification, int64, error) {
	var items []models.PlatformNotification
	var total int64

	query := s.db.Model(&models.PlatformNotification{})
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
	if err := query.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *NotificationService) Get(id uuid.UUID) (*models.PlatformNotification, error) {
	var n models.PlatformNotification
	if err := s.db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// UpdateStatus applies an operator transition: accepted to resolved, or failed back to pending.
func (s *NotificationService) UpdateStatus(id uuid.UUID, next models.NotificationStatus) (*models.PlatformNotification, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	n, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !n.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, n.Status, next)
	}

	result := s.db.Model(&models.PlatformNotification{}).
		Where("id = ? AND status = ?", id, n.Status).
		Update("status", next)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
	}
	return s.Get(id)
}

// Pending returns up to limit notifications waiting for delivery, oldest first.
func (s *NotificationService) Pending(limit int) ([]models.PlatformNotification, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	var items []models.PlatformNotification
	err := s.db.Where("status = ?", models.NotificationPending).
		Order("timestamp ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// RecordDelivery stores the outcome of a delivery attempt. It only touches rows
// that are still pending, so a concurrent operator change wins.
func (s *NotificationService) RecordDelivery(id uuid.UUID, status models.NotificationStatus, response any) error {
	if status != models.NotificationAccepted && status != models.NotificationFailed {
		return fmt.Errorf("%w: delivery outcome must be accepted or failed", ErrInvalidStatus)
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("encode platform response: %w", err)
	}

	result := s.db.Model(&models.PlatformNotification{}).
		Where("id = ? AND status = ?", id, models.NotificationPending).
		Updates(map[string]interface{}{
			"status":            status,
			"platform_response": datatypes.JSON(raw),
			"attempts":          gorm.Expr("attempts + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
