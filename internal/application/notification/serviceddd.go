package notification

import (
	"context"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/application/notification/usecases"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// Dependencies groups what the notification service needs. Cache, Publisher,
// Recipients and EmailSender are optional.
type Dependencies struct {
	NotificationRepo notification.NotificationRepository
	PreferenceRepo   notification.PreferenceRepository
	Recipients       notification.RecipientDirectory
	Cache            usecases.UnreadCountCache
	Publisher        usecases.RealtimePublisher
	EmailSender      usecases.EmailSender
	MarkdownService  dto.MarkdownService
}

type ServiceDDD struct {
	logger logger.Interface

	listNotifications      *usecases.ListNotificationsUseCase
	createNotification     *usecases.CreateNotificationUseCase
	createFromTemplate     *usecases.CreateFromTemplateUseCase
	markNotificationAsRead *usecases.MarkNotificationAsReadUseCase
	markAllAsRead          *usecases.MarkAllAsReadUseCase
	deleteNotification     *usecases.DeleteNotificationUseCase
	getUnreadCount         *usecases.GetUnreadCountUseCase

	getPreferences    *usecases.GetPreferencesUseCase
	updatePreferences *usecases.UpdatePreferencesUseCase
	listCategories    *usecases.ListCategoriesUseCase
}

func NewServiceDDD(deps Dependencies, logger logger.Interface) *ServiceDDD {
	create := usecases.NewCreateNotificationUseCase(deps.NotificationRepo, deps.Cache, deps.Publisher, deps.MarkdownService, logger)

	return &ServiceDDD{
		logger: logger,

		listNotifications:      usecases.NewListNotificationsUseCase(deps.NotificationRepo, deps.MarkdownService, logger),
		createNotification:     create,
		createFromTemplate:     usecases.NewCreateFromTemplateUseCase(deps.PreferenceRepo, create, logger),
		markNotificationAsRead: usecases.NewMarkNotificationAsReadUseCase(deps.NotificationRepo, deps.Cache, deps.Publisher, deps.MarkdownService, logger),
		markAllAsRead:          usecases.NewMarkAllAsReadUseCase(deps.NotificationRepo, deps.Cache, deps.Publisher, logger),
		deleteNotification:     usecases.NewDeleteNotificationUseCase(deps.NotificationRepo, deps.Cache, deps.Publisher, logger),
		getUnreadCount:         usecases.NewGetUnreadCountUseCase(deps.NotificationRepo, deps.Cache, logger),

		getPreferences:    usecases.NewGetPreferencesUseCase(deps.PreferenceRepo, logger),
		updatePreferences: usecases.NewUpdatePreferencesUseCase(deps.PreferenceRepo, logger),
		listCategories:    usecases.NewListCategoriesUseCase(),
	}
}

func (s *ServiceDDD) ListNotifications(ctx context.Context, actor dto.Actor, req dto.ListNotificationsRequest) (*dto.ListResponse, error) {
	return s.listNotifications.Execute(ctx, actor, req)
}

func (s *ServiceDDD) CreateNotification(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	return s.createNotification.Execute(ctx, req)
}

func (s *ServiceDDD) CreateFromTemplate(ctx context.Context, req dto.CreateFromTemplateRequest) (*dto.NotificationResponse, error) {
	return s.createFromTemplate.Execute(ctx, req)
}

func (s *ServiceDDD) MarkNotificationAsRead(ctx context.Context, actor dto.Actor, id uint) (*dto.NotificationResponse, error) {
	return s.markNotificationAsRead.Execute(ctx, actor, id)
}

func (s *ServiceDDD) MarkAllAsRead(ctx context.Context, actor dto.Actor, userID uint) (*dto.MarkAllAsReadResponse, error) {
	return s.markAllAsRead.Execute(ctx, actor, userID)
}

func (s *ServiceDDD) DeleteNotification(ctx context.Context, actor dto.Actor, id uint) error {
	return s.deleteNotification.Execute(ctx, actor, id)
}

func (s *ServiceDDD) GetUnreadCount(ctx context.Context, actor dto.Actor, userID uint) (*dto.UnreadCountResponse, error) {
	return s.getUnreadCount.Execute(ctx, actor, userID)
}

func (s *ServiceDDD) GetPreferences(ctx context.Context, actor dto.Actor, userID uint) (*dto.PreferenceResponse, error) {
	return s.getPreferences.Execute(ctx, actor, userID)
}

func (s *ServiceDDD) UpdatePreferences(ctx context.Context, actor dto.Actor, userID uint, req dto.UpdatePreferencesRequest) (*dto.PreferenceResponse, error) {
	return s.updatePreferences.Execute(ctx, actor, userID, req)
}

func (s *ServiceDDD) ListCategories() []*dto.CategoryResponse {
	return s.listCategories.Execute()
}
