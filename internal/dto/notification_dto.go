package dto

import (
	"encoding/json"
	"strings"

	"github.com/fakeguard/fakeguard/internal/models"
)

type CreateNotificationRequest struct {
	Username   string            `json:"username"`
	Platform   models.Platform   `json:"platform"`
	Evidence   json.RawMessage   `json:"evidence"`
	AlertLevel models.AlertLevel `json:"alertLevel"`
}

func (r *CreateNotificationRequest) Normalize() {
	r.Username = NormalizeUsername(r.Username)
	r.Platform = models.Platform(strings.ToLower(strings.TrimSpace(string(r.Platform))))
	r.AlertLevel = models.AlertLevel(strings.ToLower(strings.TrimSpace(string(r.AlertLevel))))
	if r.AlertLevel == "" {
		r.AlertLevel = models.LevelMedium
	}
}

func (r *CreateNotificationRequest) Validate() error {
	errs := FieldErrors{}
	if n := len([]rune(r.Username)); n < UsernameMinLength {
		errs["username"] = "must be at least 2 characters"
	} else if n > UsernameMaxLength {
		errs["username"] = "must be at most 100 characters"
	}
	if !r.Platform.ValidForNotification() {
		errs["platform"] = "must be one of twitter, instagram, facebook, telegram, linkedin"
	}
	if !r.AlertLevel.ValidForNotification() {
		errs["alertLevel"] = "must be one of low, medium, high"
	}
	if len(r.Evidence) > 0 && !json.Valid(r.Evidence) {
		errs["evidence"] = "must be valid JSON"
	}
	return errs.OrNil()
}

type UpdateNotificationStatusRequest struct {
	Status models.NotificationStatus `json:"status"`
}

type NotificationListResponse struct {
	Notifications []models.PlatformNotification `json:"notifications"`
	Total         int64                         `json:"total"`
	Limit         int                           `json:"limit"`
	Offset        int                           `json:"offset"`
}
