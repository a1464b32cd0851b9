package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type MarkNotificationAsReadUseCase struct {
	repo            notification.NotificationRepository
	markdownService dto.MarkdownService
	notifier        changeNotifier
	logger          logger.Interface
}

func NewMarkNotificationAsReadUseCase(
	repo notification.NotificationRepository,
	cache UnreadCountCache,
	publisher RealtimePublisher,
	markdownService dto.MarkdownService,
	logger logger.Interface,
) *MarkNotificationAsReadUseCase {
	return &MarkNotificationAsReadUseCase{
		repo:            repo,
		markdownService: markdownService,
		notifier:        newChangeNotifier(cache, publisher, logger),
		logger:          logger,
	}
}

// Execute marks the notification as read. Reading an already read
// notification succeeds and keeps the first read_at.
func (uc *MarkNotificationAsReadUseCase) Execute(ctx context.Context, actor dto.Actor, id uint) (*dto.NotificationResponse, error) {
	uc.logger.Infow("executing mark notification as read use case", "id", id, "user_id", actor.UserID)

	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to find notification", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if n == nil {
		return nil, errors.NewNotFoundError("notification not found")
	}

	if !actor.CanAccess(n.UserID()) {
		uc.logger.Warnw("unauthorized access to notification", "id", id, "user_id", actor.UserID, "owner_id", n.UserID())
		return nil, errors.NewForbiddenError("you don't have permission to access this notification")
	}

	if n.IsRead() {
		return dto.ToNotificationResponse(n, uc.markdownService), nil
	}

	if err := n.MarkAsRead(); err != nil {
		uc.logger.Errorw("failed to mark notification as read", "id", id, "error", err)
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}

	updated, err := uc.repo.MarkAsRead(ctx, n)
	if err != nil {
		uc.logger.Errorw("failed to persist notification update", "id", id, "error", err)
		return nil, fmt.Errorf("failed to save notification: %w", err)
	}
	n.ClearEvents()

	if !updated {
		// Another request read it first; return the stored state.
		current, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reload notification: %w", err)
		}
		if current == nil {
			return nil, errors.NewNotFoundError("notification not found")
		}
		return dto.ToNotificationResponse(current, uc.markdownService), nil
	}

	response := dto.ToNotificationResponse(n, uc.markdownService)
	uc.notifier.notify(ctx, dto.RealtimeEvent{
		Type:           notification.EventTypeNotificationRead,
		UserID:         n.UserID(),
		NotificationID: n.ID(),
		Notification:   response,
	})

	uc.logger.Infow("notification marked as read", "id", id)
	return response, nil
}
