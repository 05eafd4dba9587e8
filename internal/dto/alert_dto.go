package dto

import "github.com/fakeguard/fakeguard/internal/models"

type AlertFilter struct {
	Status   models.AlertStatus
	Level    models.AlertLevel
	Platform models.Platform
	Limit    int
	Offset   int
}

type AlertListResponse struct {
	Alerts []models.Alert `json:"alerts"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type UpdateAlertStatusRequest struct {
	Status models.AlertStatus `json:"status"`
}
