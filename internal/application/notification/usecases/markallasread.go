package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type MarkAllAsReadUseCase struct {
	repo     notification.NotificationRepository
	notifier changeNotifier
	logger   logger.Interface
}

func NewMarkAllAsReadUseCase(
	repo notification.NotificationRepository,
	cache UnreadCountCache,
	publisher RealtimePublisher,
	logger logger.Interface,
) *MarkAllAsReadUseCase {
	return &MarkAllAsReadUseCase{
		repo:     repo,
		notifier: newChangeNotifier(cache, publisher, logger),
		logger:   logger,
	}
}

func (uc *MarkAllAsReadUseCase) Execute(ctx context.Context, actor dto.Actor, userID uint) (*dto.MarkAllAsReadResponse, error) {
	uc.logger.Infow("executing mark all as read use case", "user_id", userID, "actor_id", actor.UserID)

	if !actor.CanAccess(userID) {
		uc.logger.Warnw("unauthorized access to notifications", "user_id", userID, "actor_id", actor.UserID)
		return nil, errors.NewForbiddenError("you don't have permission to access these notifications")
	}

	readAt := biztime.NowUTC()
	updated, err := uc.repo.MarkAllAsRead(ctx, userID, readAt)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications as read", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	if updated > 0 {
		zero := int64(0)
		uc.notifier.notify(ctx, dto.RealtimeEvent{
			Type:        notification.EventTypeAllRead,
			UserID:      userID,
			UnreadCount: &zero,
			OccurredAt:  readAt,
		})
	}

	uc.logger.Infow("all notifications marked as read", "user_id", userID, "updated", updated)
	return &dto.MarkAllAsReadResponse{Updated: updated}, nil
}
