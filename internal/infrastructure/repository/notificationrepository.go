package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/mappers"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
	"github.com/edofi/fiwe/internal/shared/errors"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) notification.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mappers.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notif *notification.Notification) error {
	model, err := r.mapper.ToModel(notif)
	if err != nil {
		return fmt.Errorf("failed to map notification entity to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if err := notif.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set notification ID: %w", err)
	}

	return nil
}

func (r *NotificationRepositoryImpl) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model models.NotificationModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification by ID: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map notification model to entity: %w", err)
	}

	return entity, nil
}

func (r *NotificationRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.NotificationModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete notification: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("notification not found")
	}

	return nil
}

func (r *NotificationRepositoryImpl) List(ctx context.Context, filter notification.ListFilter) ([]*notification.Notification, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).Where("user_id = ?", filter.UserID)

	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Read != nil {
		if *filter.Read {
			query = query.Where("read_at IS NOT NULL")
		} else {
			query = query.Where("read_at IS NULL")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var modelList []*models.NotificationModel
	query = query.Order("created_at DESC").Order("id DESC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map notification models to entities: %w", err)
	}

	return entities, total, nil
}

func (r *NotificationRepositoryImpl) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkAsRead persists the read state of n unless another writer got there
// first. It reports whether this call performed the transition.
func (r *NotificationRepositoryImpl) MarkAsRead(ctx context.Context, n *notification.Notification) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ? AND read_at IS NULL", n.ID()).
		Updates(map[string]interface{}{
			"status":     n.Status().String(),
			"read_at":    n.ReadAt(),
			"version":    gorm.Expr("version + ?", 1),
			"updated_at": n.UpdatedAt(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(ctx context.Context, userID uint, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Updates(map[string]interface{}{
			"status":     vo.StatusRead.String(),
			"read_at":    readAt,
			"version":    gorm.Expr("version + ?", 1),
			"updated_at": readAt,
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *NotificationRepositoryImpl) ListPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var modelList []*models.NotificationModel

	query := r.db.WithContext(ctx).
		Where("status = ?", vo.StatusPending.String()).
		Order("created_at ASC").
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, fmt.Errorf("failed to map notification models to entities: %w", err)
	}

	return entities, nil
}

// UpdateDeliveryStatus stores the SENT or FAILED outcome of n. Rows that left
// PENDING meanwhile, typically because the user read them, are not touched.
func (r *NotificationRepositoryImpl) UpdateDeliveryStatus(ctx context.Context, n *notification.Notification) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ? AND status = ?", n.ID(), vo.StatusPending.String()).
		Updates(map[string]interface{}{
			"status":     n.Status().String(),
			"sent_at":    n.SentAt(),
			"version":    gorm.Expr("version + ?", 1),
			"updated_at": n.UpdatedAt(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to update delivery status: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	var ids []uint

	query := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("read_at IS NOT NULL AND read_at < ?", cutoff).
		Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Pluck("id", &ids).Error; err != nil {
		return 0, fmt.Errorf("failed to select expired notifications: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).Delete(&models.NotificationModel{}, ids)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired notifications: %w", result.Error)
	}

	return result.RowsAffected, nil
}
