package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/logger"
)

const defaultCleanupBatchSize = 500

// CleanupNotificationsUseCase hard deletes READ notifications once their
// read_at is older than the retention period. Unread notifications are kept.
type CleanupNotificationsUseCase struct {
	repo      notification.NotificationRepository
	retention time.Duration
	batchSize int
	logger    logger.Interface
}

func NewCleanupNotificationsUseCase(
	repo notification.NotificationRepository,
	retention time.Duration,
	batchSize int,
	logger logger.Interface,
) *CleanupNotificationsUseCase {
	if batchSize <= 0 {
		batchSize = defaultCleanupBatchSize
	}
	return &CleanupNotificationsUseCase{
		repo:      repo,
		retention: retention,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Execute deletes in batches until a short batch comes back and returns the
// number of rows removed.
func (uc *CleanupNotificationsUseCase) Execute(ctx context.Context) (int, error) {
	if uc.retention <= 0 {
		uc.logger.Debugw("notification cleanup disabled", "retention", uc.retention)
		return 0, nil
	}

	cutoff := biztime.NowUTC().Add(-uc.retention)
	uc.logger.Infow("executing cleanup notifications use case", "cutoff", cutoff)

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		deleted, err := uc.repo.DeleteReadBefore(ctx, cutoff, uc.batchSize)
		if err != nil {
			uc.logger.Errorw("failed to delete old notifications", "cutoff", cutoff, "deleted_so_far", total, "error", err)
			return total, fmt.Errorf("failed to delete old notifications: %w", err)
		}
		total += int(deleted)

		if deleted < int64(uc.batchSize) {
			break
		}
	}

	if total > 0 {
		uc.logger.Infow("old notifications deleted", "count", total, "cutoff", cutoff)
	}
	return total, nil
}
