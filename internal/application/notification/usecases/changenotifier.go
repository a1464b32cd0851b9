package usecases

import (
	"context"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// changeNotifier runs the side effects that follow a committed change: drop
// the cached unread count and push the event to open streams. Both are best
// effort; failures are logged and never fail the use case.
type changeNotifier struct {
	cache     UnreadCountCache
	publisher RealtimePublisher
	logger    logger.Interface
}

func newChangeNotifier(cache UnreadCountCache, publisher RealtimePublisher, logger logger.Interface) changeNotifier {
	return changeNotifier{cache: cache, publisher: publisher, logger: logger}
}

func (c changeNotifier) notify(ctx context.Context, event dto.RealtimeEvent) {
	if c.cache != nil {
		if err := c.cache.Invalidate(ctx, event.UserID); err != nil {
			c.logger.Warnw("failed to invalidate unread count cache", "user_id", event.UserID, "error", err)
		}
	}
	if c.publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = biztime.NowUTC()
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warnw("failed to publish realtime notification event",
			"type", event.Type,
			"user_id", event.UserID,
			"error", err,
		)
	}
}
