package mappers

import (
	"fmt"

	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/infrastructure/persistence/models"
)

type PreferenceMapper interface {
	ToEntity(model *models.PreferenceModel) (*notification.Preference, error)
	ToModel(entity *notification.Preference) *models.PreferenceModel
	// ToColumns maps the set fields of a partial update to column values.
	ToColumns(changes notification.PreferenceUpdate) map[string]any
}

type PreferenceMapperImpl struct{}

func NewPreferenceMapper() PreferenceMapper {
	return &PreferenceMapperImpl{}
}

func (m *PreferenceMapperImpl) ToEntity(model *models.PreferenceModel) (*notification.Preference, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := notification.ReconstructPreference(
		model.ID,
		model.UserID,
		map[vo.Channel]bool{
			vo.ChannelEmail: model.EmailEnabled,
			vo.ChannelPush:  model.PushEnabled,
			vo.ChannelSMS:   model.SMSEnabled,
			vo.ChannelInApp: model.InAppEnabled,
		},
		map[vo.Category]bool{
			vo.CategoryPlanning:     model.PlanningEnabled,
			vo.CategoryBooking:      model.BookingEnabled,
			vo.CategorySocial:       model.SocialEnabled,
			vo.CategoryPerformance:  model.PerformanceEnabled,
			vo.CategorySystem:       model.SystemEnabled,
			vo.CategoryCommercial:   model.CommercialEnabled,
			vo.CategoryPersonalized: model.PersonalizedEnabled,
			vo.CategoryUrgent:       model.UrgentEnabled,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct preference entity: %w", err)
	}
	return entity, nil
}

func (m *PreferenceMapperImpl) ToModel(entity *notification.Preference) *models.PreferenceModel {
	if entity == nil {
		return nil
	}

	channels := entity.Channels()
	categories := entity.Categories()
	return &models.PreferenceModel{
		ID:                  entity.ID(),
		UserID:              entity.UserID(),
		EmailEnabled:        channels[vo.ChannelEmail],
		PushEnabled:         channels[vo.ChannelPush],
		SMSEnabled:          channels[vo.ChannelSMS],
		InAppEnabled:        channels[vo.ChannelInApp],
		PlanningEnabled:     categories[vo.CategoryPlanning],
		BookingEnabled:      categories[vo.CategoryBooking],
		SocialEnabled:       categories[vo.CategorySocial],
		PerformanceEnabled:  categories[vo.CategoryPerformance],
		SystemEnabled:       categories[vo.CategorySystem],
		CommercialEnabled:   categories[vo.CategoryCommercial],
		PersonalizedEnabled: categories[vo.CategoryPersonalized],
		UrgentEnabled:       categories[vo.CategoryUrgent],
		CreatedAt:           entity.CreatedAt(),
		UpdatedAt:           entity.UpdatedAt(),
	}
}

func (m *PreferenceMapperImpl) ToColumns(changes notification.PreferenceUpdate) map[string]any {
	fields := map[string]*bool{
		"email_enabled":        changes.EmailEnabled,
		"push_enabled":         changes.PushEnabled,
		"sms_enabled":          changes.SMSEnabled,
		"in_app_enabled":       changes.InAppEnabled,
		"planning_enabled":     changes.PlanningEnabled,
		"booking_enabled":      changes.BookingEnabled,
		"social_enabled":       changes.SocialEnabled,
		"performance_enabled":  changes.PerformanceEnabled,
		"system_enabled":       changes.SystemEnabled,
		"commercial_enabled":   changes.CommercialEnabled,
		"personalized_enabled": changes.PersonalizedEnabled,
		"urgent_enabled":       changes.UrgentEnabled,
	}

	columns := make(map[string]any, len(fields))
	for column, v := range fields {
		if v != nil {
			columns[column] = *v
		}
	}
	return columns
}
