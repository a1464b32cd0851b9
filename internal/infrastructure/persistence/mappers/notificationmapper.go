package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
	"github.com/edofi/fiwe/internal/shared/mapper"
)

type NotificationMapper interface {
	ToEntity(model *models.NotificationModel) (*notification.Notification, error)
	ToModel(entity *notification.Notification) (*models.NotificationModel, error)
	ToEntities(models []*models.NotificationModel) ([]*notification.Notification, error)
	ToModels(entities []*notification.Notification) ([]*models.NotificationModel, error)
}

type NotificationMapperImpl struct{}

func NewNotificationMapper() NotificationMapper {
	return &NotificationMapperImpl{}
}

func (m *NotificationMapperImpl) ToEntity(model *models.NotificationModel) (*notification.Notification, error) {
	if model == nil {
		return nil, nil
	}

	notificationType, err := vo.NewNotificationType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification type: %w", err)
	}

	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}

	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	var data map[string]any
	if len(model.Data) > 0 {
		if err := json.Unmarshal(model.Data, &data); err != nil {
			return nil, fmt.Errorf("failed to deserialize notification data: %w", err)
		}
	}

	entity, err := notification.ReconstructNotification(
		model.ID,
		model.UserID,
		notificationType,
		priority,
		model.Title,
		model.Message,
		data,
		status,
		model.ReadAt,
		model.SentAt,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct notification entity: %w", err)
	}

	return entity, nil
}

func (m *NotificationMapperImpl) ToModel(entity *notification.Notification) (*models.NotificationModel, error) {
	if entity == nil {
		return nil, nil
	}

	var dataJSON datatypes.JSON
	if data := entity.Data(); len(data) > 0 {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize notification data: %w", err)
		}
		dataJSON = jsonBytes
	}

	return &models.NotificationModel{
		ID:        entity.ID(),
		UserID:    entity.UserID(),
		Type:      entity.Type().String(),
		Priority:  entity.Priority().String(),
		Title:     entity.Title(),
		Message:   entity.Message(),
		Data:      dataJSON,
		Status:    entity.Status().String(),
		ReadAt:    entity.ReadAt(),
		SentAt:    entity.SentAt(),
		Version:   entity.Version(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *NotificationMapperImpl) ToEntities(modelList []*models.NotificationModel) ([]*notification.Notification, error) {
	return mapper.MapRows(modelList, m.ToEntity, func(model *models.NotificationModel) uint { return model.ID })
}

func (m *NotificationMapperImpl) ToModels(entities []*notification.Notification) ([]*models.NotificationModel, error) {
	return mapper.MapRows(entities, m.ToModel, func(entity *notification.Notification) uint { return entity.ID() })
}
