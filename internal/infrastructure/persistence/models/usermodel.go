package models

import (
	"time"

	"github.com/edofi/fiwe/internal/shared/constants"
)

// UserModel is the read side of the platform's users table. Notifications
// only need the address and display name of a recipient.
type UserModel struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;not null;size:255"`
	FullName  string `gorm:"size:150"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return constants.TableUsers
}
