package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRef points at the account an alert is about.
type ProfileRef struct {
	Username    string   `gorm:"column:username;not null;size:100;index" json:"username"`
	Platform    Platform `gorm:"column:platform;not null;size:20;index" json:"platform"`
	DisplayName string   `gorm:"column:display_name;size:200" json:"displayName,omitempty"`
	ProfileURL  string   `gorm:"column:profile_url;size:2048" json:"profileUrl,omitempty"`
	AvatarURL   string   `gorm:"column:avatar_url;size:2048" json:"avatarUrl,omitempty"`
}

// Alert describes a suspected inauthentic account.
type Alert struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Profile     ProfileRef  `gorm:"embedded" json:"profile"`
	AlertLevel  AlertLevel  `gorm:"not null;size:20;index" json:"alertLevel"`
	Status      AlertStatus `gorm:"not null;default:'new';size:20;index" json:"status"`
	RiskScore   int         `gorm:"not null;default:0" json:"riskScore"`
	Title       string      `gorm:"size:200" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Indicators  []string    `gorm:"type:jsonb;serializer:json" json:"indicators"`
	Source      string      `gorm:"size:50" json:"source"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (a *Alert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
