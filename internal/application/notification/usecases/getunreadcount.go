package usecases

import (
	"context"
	"fmt"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/errors"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type GetUnreadCountUseCase struct {
	repo   notification.NotificationRepository
	cache  UnreadCountCache
	logger logger.Interface
}

// NewGetUnreadCountUseCase accepts a nil cache, in which case every call
// counts in the repository.
func NewGetUnreadCountUseCase(
	repo notification.NotificationRepository,
	cache UnreadCountCache,
	logger logger.Interface,
) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, actor dto.Actor, userID uint) (*dto.UnreadCountResponse, error) {
	uc.logger.Debugw("executing get unread count use case", "user_id", userID)

	if !actor.CanAccess(userID) {
		uc.logger.Warnw("unauthorized access to notifications", "user_id", userID, "actor_id", actor.UserID)
		return nil, errors.NewForbiddenError("you don't have permission to access these notifications")
	}

	load := func(ctx context.Context) (int64, error) {
		return uc.repo.CountUnread(ctx, userID)
	}

	var (
		count int64
		err   error
	)
	if uc.cache != nil {
		count, err = uc.cache.GetOrLoad(ctx, userID, load)
	} else {
		count, err = load(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &dto.UnreadCountResponse{Count: count}, nil
}
