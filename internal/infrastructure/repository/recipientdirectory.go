package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
)

// RecipientDirectoryImpl resolves delivery addresses from the users table.
type RecipientDirectoryImpl struct {
	db *gorm.DB
}

func NewRecipientDirectory(db *gorm.DB) notification.RecipientDirectory {
	return &RecipientDirectoryImpl{db: db}
}

func (r *RecipientDirectoryImpl) GetRecipient(ctx context.Context, userID uint) (*notification.Recipient, error) {
	var model models.UserModel

	err := r.db.WithContext(ctx).
		Select("id", "email", "full_name").
		First(&model, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}

	return &notification.Recipient{
		UserID:   model.ID,
		Email:    model.Email,
		FullName: model.FullName,
	}, nil
}
