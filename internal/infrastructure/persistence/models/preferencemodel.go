package models

import (
	"time"

	"github.com/edofi/fiwe/internal/shared/constants"
)

// PreferenceModel stores one row per user.
type PreferenceModel struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex"`

	EmailEnabled bool `gorm:"not null"`
	PushEnabled  bool `gorm:"not null"`
	SMSEnabled   bool `gorm:"column:sms_enabled;not null"`
	InAppEnabled bool `gorm:"not null"`

	PlanningEnabled     bool `gorm:"not null"`
	BookingEnabled      bool `gorm:"not null"`
	SocialEnabled       bool `gorm:"not null"`
	PerformanceEnabled  bool `gorm:"not null"`
	SystemEnabled       bool `gorm:"not null"`
	CommercialEnabled   bool `gorm:"not null"`
	PersonalizedEnabled bool `gorm:"not null"`
	UrgentEnabled       bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PreferenceModel) TableName() string {
	return constants.TableNotificationPreferences
}
