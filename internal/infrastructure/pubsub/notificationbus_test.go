package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/shared/logger"
)

func TestRedisNotificationBus_PublishSubscribe(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	bus := NewRedisNotificationBus(client, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan dto.RealtimeEvent, 1)
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(event dto.RealtimeEvent) {
			received <- event
		})
	}()

	// wait for the subscription before publishing
	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	count := int64(3)
	require.NoError(t, bus.Publish(ctx, dto.RealtimeEvent{
		Type:           "notification.created",
		UserID:         42,
		NotificationID: 9,
		UnreadCount:    &count,
	}))

	select {
	case event := <-received:
		assert.Equal(t, "notification.created", event.Type)
		assert.Equal(t, uint(42), event.UserID)
		assert.Equal(t, uint(9), event.NotificationID)
		require.NotNil(t, event.UnreadCount)
		assert.Equal(t, int64(3), *event.UnreadCount)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestRedisNotificationBus_SkipsMalformedPayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	bus := NewRedisNotificationBus(client, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan dto.RealtimeEvent, 2)
	go func() {
		_ = bus.Subscribe(ctx, func(event dto.RealtimeEvent) { received <- event })
	}()
	require.Eventually(t, func() bool {
		return len(mr.PubSubChannels("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mr.Publish("fiwe:notifications:events", "{not json")
	require.NoError(t, bus.Publish(ctx, dto.RealtimeEvent{Type: "notification.read", UserID: 1}))

	select {
	case event := <-received:
		assert.Equal(t, "notification.read", event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}
