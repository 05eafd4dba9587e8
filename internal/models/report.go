package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is a user-submitted complaint about a suspicious profile.
type Report struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Username      string       `gorm:"not null;size:100;index" json:"username"`
	Platform      Platform     `gorm:"not null;size:20;index" json:"platform"`
	Reason        string       `gorm:"not null;size:1000" json:"reason"`
	ScreenshotURL string       `gorm:"size:2048" json:"screenshotUrl,omitempty"`
	Status        ReportStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`
	AdminNote     string       `gorm:"size:1000" json:"adminNote,omitempty"`
	ReporterID    *uuid.UUID   `gorm:"type:uuid;index" json:"-"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
