package handlers

import (
	"context"

	"github.com/edofi/fiwe/internal/application/notification/dto"
)

// Service interface for NotificationHandler - enables unit testing with mocks.
type notificationService interface {
	ListNotifications(ctx context.Context, actor dto.Actor, req dto.ListNotificationsRequest) (*dto.ListResponse, error)
	CreateNotification(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	CreateFromTemplate(ctx context.Context, req dto.CreateFromTemplateRequest) (*dto.NotificationResponse, error)
	MarkNotificationAsRead(ctx context.Context, actor dto.Actor, id uint) (*dto.NotificationResponse, error)
	MarkAllAsRead(ctx context.Context, actor dto.Actor, userID uint) (*dto.MarkAllAsReadResponse, error)
	DeleteNotification(ctx context.Context, actor dto.Actor, id uint) error
	GetUnreadCount(ctx context.Context, actor dto.Actor, userID uint) (*dto.UnreadCountResponse, error)
	GetPreferences(ctx context.Context, actor dto.Actor, userID uint) (*dto.PreferenceResponse, error)
	UpdatePreferences(ctx context.Context, actor dto.Actor, userID uint, req dto.UpdatePreferencesRequest) (*dto.PreferenceResponse, error)
	ListCategories() []*dto.CategoryResponse
}

// PermissionChecker decides whether a role may perform action on resource.
type PermissionChecker interface {
	Enforce(role, resource, action string) (bool, error)
}
