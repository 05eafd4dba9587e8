package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlatformNotification is a takedown notice forwarded to the platform hosting a fake account.
type PlatformNotification struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string             `gorm:"not null;size:100;index" json:"username"`
	Platform         Platform           `gorm:"not null;size:20;index" json:"platform"`
	Evidence         datatypes.JSON     `gorm:"type:jsonb" json:"evidence"`
	AlertLevel       AlertLevel         `gorm:"not null;size:20" json:"alertLevel"`
	RequestedBy      string             `gorm:"not null;size:255" json:"requestedBy"`
	Timestamp        time.Time          `gorm:"not null;index" json:"timestamp"`
	Status           NotificationStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`
	PlatformResponse datatypes.JSON     `gorm:"type:jsonb" json:"platformResponse"`
	Attempts         int                `gorm:"not null;default:0" json:"attempts"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

func (n *PlatformNotification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	return nil
}
