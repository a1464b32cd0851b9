package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// RedisNotificationBus relays realtime notification events between
// instances so a user connected to any instance receives them.
type RedisNotificationBus struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

func NewRedisNotificationBus(client *redis.Client, logger logger.Interface) *RedisNotificationBus {
	return &RedisNotificationBus{
		client:  client,
		channel: constants.RedisChannelNotifications,
		logger:  logger,
	}
}

// Publish implements usecases.RealtimePublisher.
func (b *RedisNotificationBus) Publish(ctx context.Context, event dto.RealtimeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish realtime event",
			"event_type", event.Type,
			"user_id", event.UserID,
			"error", err,
		)
		return fmt.Errorf("failed to publish realtime event: %w", err)
	}

	b.logger.Debugw("realtime event published to Redis",
		"event_type", event.Type,
		"user_id", event.UserID,
	)
	return nil
}

// Subscribe delivers every relayed event to handler until ctx is done,
// reconnecting with exponential backoff when the subscription drops.
func (b *RedisNotificationBus) Subscribe(ctx context.Context, handler func(event dto.RealtimeEvent)) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = time.Second
	retry.MaxInterval = 30 * time.Second

	for {
		err := b.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			// the channel closed after a healthy subscription
			retry.Reset()
		}

		wait := retry.NextBackOff()
		b.logger.Warnw("notification subscription disconnected, reconnecting",
			"channel", b.channel,
			"error", err,
			"backoff", wait,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (b *RedisNotificationBus) subscribe(ctx context.Context, handler func(event dto.RealtimeEvent)) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", b.channel, err)
	}

	b.logger.Infow("subscribed to notification channel", "channel", b.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("notification subscriber stopped",
				"channel", b.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("notification channel closed", "channel", b.channel)
				return nil
			}

			var event dto.RealtimeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal realtime event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			handler(event)
		}
	}
}
