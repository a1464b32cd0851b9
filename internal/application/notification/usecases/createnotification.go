package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type CreateNotificationUseCase struct {
	repo            notification.NotificationRepository
	markdownService dto.MarkdownService
	notifier        changeNotifier
	logger          logger.Interface
}

func NewCreateNotificationUseCase(
	repo notification.NotificationRepository,
	cache UnreadCountCache,
	publisher RealtimePublisher,
	markdownService dto.MarkdownService,
	logger logger.Interface,
) *CreateNotificationUseCase {
	return &CreateNotificationUseCase{
		repo:            repo,
		markdownService: markdownService,
		notifier:        newChangeNotifier(cache, publisher, logger),
		logger:          logger,
	}
}

func (uc *CreateNotificationUseCase) Execute(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	uc.logger.Infow("executing create notification use case", "user_id", req.UserID, "type", req.Type)

	notificationType, err := vo.NewNotificationType(req.Type)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	var priority vo.Priority
	if req.Priority != "" {
		if priority, err = vo.NewPriority(req.Priority); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	n, err := notification.NewNotification(req.UserID, notificationType, priority, req.Title, req.Message, req.Data)
	if err != nil {
		uc.logger.Warnw("invalid notification", "user_id", req.UserID, "type", req.Type, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	return uc.store(ctx, n)
}

// store persists a validated notification and runs the post-commit effects.
func (uc *CreateNotificationUseCase) store(ctx context.Context, n *notification.Notification) (*dto.NotificationResponse, error) {
	if err := uc.repo.Create(ctx, n); err != nil {
		uc.logger.Errorw("failed to create notification", "user_id", n.UserID(), "type", n.Type(), "error", err)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	n.ClearEvents()

	response := dto.ToNotificationResponse(n, uc.markdownService)
	uc.notifier.notify(ctx, dto.RealtimeEvent{
		Type:           notification.EventTypeNotificationCreated,
		UserID:         n.UserID(),
		NotificationID: n.ID(),
		Notification:   response,
	})

	uc.logger.Infow("notification created", "id", n.ID(), "user_id", n.UserID(), "type", n.Type())
	return response, nil
}
