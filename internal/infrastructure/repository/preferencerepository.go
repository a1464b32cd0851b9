package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/mappers"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
	"github.com/edofi/fiwe/internal/shared/errors"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) notification.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mappers.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) GetByUserID(ctx context.Context, userID uint) (*notification.Preference, error) {
	var model models.PreferenceModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification preference: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Create inserts the row. A concurrent insert for the same user surfaces as
// the driver's duplicate key error.
func (r *PreferenceRepositoryImpl) Create(ctx context.Context, pref *notification.Preference) error {
	model := r.mapper.ToModel(pref)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification preference: %w", err)
	}

	if err := pref.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set preference ID: %w", err)
	}

	return nil
}

func (r *PreferenceRepositoryImpl) Update(ctx context.Context, pref *notification.Preference, changes notification.PreferenceUpdate) error {
	columns := r.mapper.ToColumns(changes)
	if len(columns) == 0 {
		return nil
	}
	columns["updated_at"] = pref.UpdatedAt()

	result := r.db.WithContext(ctx).
		Model(&models.PreferenceModel{}).
		Where("id = ?", pref.ID()).
		Updates(columns)

	if result.Error != nil {
		return fmt.Errorf("failed to update notification preference: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("notification preference not found")
	}

	return nil
}
