package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edofi/fiwe/internal/shared/constants"
)

type NotificationModel struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"not null;index:idx_user_read;index:idx_user_created"`
	Type      string         `gorm:"size:50;not null"`
	Priority  string         `gorm:"size:20;not null"`
	Title     string         `gorm:"size:200;not null"`
	Message   string         `gorm:"type:text;not null"`
	Data      datatypes.JSON `gorm:"type:json"`
	Status    string         `gorm:"size:20;not null;index:idx_status_created"`
	ReadAt    *time.Time     `gorm:"index:idx_user_read"`
	SentAt    *time.Time
	Version   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"index:idx_user_created;index:idx_status_created"`
	UpdatedAt time.Time
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.Status == "" {
		n.Status = "PENDING"
	}
	if n.Version == 0 {
		n.Version = 1
	}
	return nil
}
