package dto

import (
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/domain/notification/templates"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/mapper"
)

type MarkdownService interface {
	ToHTMLSanitized(markdown string) (string, error)
}

// ToNotificationResponse converts a notification. A markdown failure leaves
// message_html empty rather than failing the response.
func ToNotificationResponse(n *notification.Notification, markdownSvc MarkdownService) *NotificationResponse {
	if n == nil {
		return nil
	}

	messageHTML := ""
	if markdownSvc != nil {
		if html, err := markdownSvc.ToHTMLSanitized(n.Message()); err == nil {
			messageHTML = html
		}
	}

	return &NotificationResponse{
		ID:          n.ID(),
		UserID:      n.UserID(),
		Type:        n.Type().String(),
		Category:    n.Category().String(),
		Priority:    n.Priority().String(),
		Title:       n.Title(),
		Message:     n.Message(),
		MessageHTML: messageHTML,
		Data:        n.Data(),
		Status:      n.Status().String(),
		ReadAt:      n.ReadAt(),
		SentAt:      n.SentAt(),
		CreatedAt:   n.CreatedAt(),
		UpdatedAt:   n.UpdatedAt(),
	}
}

func ToNotificationResponseList(notifications []*notification.Notification, markdownSvc MarkdownService) []*NotificationResponse {
	return mapper.MapSlice(notifications, func(n *notification.Notification) *NotificationResponse {
		return ToNotificationResponse(n, markdownSvc)
	})
}

func ToPreferenceResponse(p *notification.Preference) *PreferenceResponse {
	if p == nil {
		return nil
	}
	return &PreferenceResponse{
		UserID:       p.UserID(),
		EmailEnabled: p.ChannelEnabled(vo.ChannelEmail),
		PushEnabled:  p.ChannelEnabled(vo.ChannelPush),
		SMSEnabled:   p.ChannelEnabled(vo.ChannelSMS),
		InAppEnabled: p.ChannelEnabled(vo.ChannelInApp),

		PlanningEnabled:     p.CategoryEnabled(vo.CategoryPlanning),
		BookingEnabled:      p.CategoryEnabled(vo.CategoryBooking),
		SocialEnabled:       p.CategoryEnabled(vo.CategorySocial),
		PerformanceEnabled:  p.CategoryEnabled(vo.CategoryPerformance),
		SystemEnabled:       p.CategoryEnabled(vo.CategorySystem),
		CommercialEnabled:   p.CategoryEnabled(vo.CategoryCommercial),
		PersonalizedEnabled: p.CategoryEnabled(vo.CategoryPersonalized),
		UrgentEnabled:       p.CategoryEnabled(vo.CategoryUrgent),

		UpdatedAt: p.UpdatedAt(),
	}
}

func (r UpdatePreferencesRequest) ToDomain() notification.PreferenceUpdate {
	return notification.PreferenceUpdate{
		EmailEnabled:        r.EmailEnabled,
		PushEnabled:         r.PushEnabled,
		SMSEnabled:          r.SMSEnabled,
		InAppEnabled:        r.InAppEnabled,
		PlanningEnabled:     r.PlanningEnabled,
		BookingEnabled:      r.BookingEnabled,
		SocialEnabled:       r.SocialEnabled,
		PerformanceEnabled:  r.PerformanceEnabled,
		SystemEnabled:       r.SystemEnabled,
		CommercialEnabled:   r.CommercialEnabled,
		PersonalizedEnabled: r.PersonalizedEnabled,
		UrgentEnabled:       r.UrgentEnabled,
	}
}

func ToCategoryResponses(groups []templates.CategoryGroup) []*CategoryResponse {
	return mapper.MapSlice(groups, func(g templates.CategoryGroup) *CategoryResponse {
		types := mapper.MapSlice(g.Types, func(t vo.NotificationType) string {
			return t.String()
		})
		return &CategoryResponse{
			ID:            g.ID.String(),
			Name:          g.Name,
			Icon:          g.Icon,
			Description:   g.Description,
			PreferenceKey: g.ID.PreferenceKey(),
			Types:         types,
		}
	})
}
