package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/shared/logger"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNopLogger())

	var mu sync.Mutex
	var got []string
	handler := NewSimpleEventHandler("booking.created", func(_ context.Context, e DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.GetAggregateID())
		return nil
	})
	require.NoError(t, d.Subscribe("booking.created", handler))
	assert.True(t, d.HasSubscribers("booking.created"))

	require.NoError(t, d.Start())
	require.NoError(t, d.PublishAll([]DomainEvent{
		NewPayloadEvent("booking.created", "b-1", nil, time.Now()),
		NewPayloadEvent("payment.failed", "p-1", nil, time.Now()),
	}))
	require.NoError(t, d.Stop())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"b-1"}, got)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNopLogger())

	done := make(chan struct{}, 1)
	require.NoError(t, d.Subscribe("x", NewSimpleEventHandler("x", func(context.Context, DomainEvent) error {
		return errors.New("boom")
	})))
	require.NoError(t, d.Subscribe("x", NewSimpleEventHandler("x", func(context.Context, DomainEvent) error {
		done <- struct{}{}
		return nil
	})))

	require.NoError(t, d.Start())
	require.NoError(t, d.Publish(NewPayloadEvent("x", "1", nil, time.Now())))
	require.NoError(t, d.Stop())

	select {
	case <-done:
	default:
		t.Fatal("second handler did not run")
	}
}

func TestDispatcher_Lifecycle(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNopLogger())

	assert.EqualError(t, d.Publish(NewPayloadEvent("x", "1", nil, time.Now())), "event dispatcher is not running")
	assert.EqualError(t, d.Stop(), "event dispatcher is not running")

	require.NoError(t, d.Start())
	assert.EqualError(t, d.Start(), "event dispatcher is already running")
	require.NoError(t, d.Stop())
}

func TestDispatcher_Unsubscribe(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNopLogger())
	h := NewSimpleEventHandler("x", nil)

	require.NoError(t, d.Subscribe("x", h))
	require.NoError(t, d.Unsubscribe("x", h))
	assert.False(t, d.HasSubscribers("x"))

	assert.EqualError(t, d.Subscribe("", h), "event type cannot be empty")
}
