package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type DeleteNotificationUseCase struct {
	repo     notification.NotificationRepository
	notifier changeNotifier
	logger   logger.Interface
}

func NewDeleteNotificationUseCase(
	repo notification.NotificationRepository,
	cache UnreadCountCache,
	publisher RealtimePublisher,
	logger logger.Interface,
) *DeleteNotificationUseCase {
	return &DeleteNotificationUseCase{
		repo:     repo,
		notifier: newChangeNotifier(cache, publisher, logger),
		logger:   logger,
	}
}

func (uc *DeleteNotificationUseCase) Execute(ctx context.Context, actor dto.Actor, id uint) error {
	uc.logger.Infow("executing delete notification use case", "id", id, "user_id", actor.UserID)

	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to find notification", "id", id, "error", err)
		return fmt.Errorf("failed to find notification: %w", err)
	}
	if n == nil {
		return errors.NewNotFoundError("notification not found")
	}

	if !actor.CanAccess(n.UserID()) {
		uc.logger.Warnw("unauthorized access to notification", "id", id, "user_id", actor.UserID, "owner_id", n.UserID())
		return errors.NewForbiddenError("you don't have permission to access this notification")
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.IsNotFoundError(err) {
			return err
		}
		uc.logger.Errorw("failed to delete notification", "id", id, "error", err)
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	uc.notifier.notify(ctx, dto.RealtimeEvent{
		Type:           notification.EventTypeNotificationDeleted,
		UserID:         n.UserID(),
		NotificationID: id,
	})

	uc.logger.Infow("notification deleted", "id", id, "was_unread", !n.IsRead())
	return nil
}
