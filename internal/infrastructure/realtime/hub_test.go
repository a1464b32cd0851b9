package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/shared/logger"
)

func TestHub_DeliversToOwnClientsOnly(t *testing.T) {
	hub := NewHub(4, logger.NewNopLogger())
	a1 := hub.Register(1)
	a2 := hub.Register(1)
	b := hub.Register(2)
	assert.NotEqual(t, a1.ID, a2.ID)
	assert.Equal(t, 2, hub.ClientCount(1))

	require.NoError(t, hub.Publish(context.Background(), dto.RealtimeEvent{Type: "notification.created", UserID: 1}))

	assert.Equal(t, "notification.created", (<-a1.Events()).Type)
	assert.Equal(t, "notification.created", (<-a2.Events()).Type)
	assert.Empty(t, b.Events())
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := NewHub(1, logger.NewNopLogger())
	c := hub.Register(5)

	hub.Unregister(c)
	hub.Unregister(c)

	_, open := <-c.Events()
	assert.False(t, open)
	assert.Zero(t, hub.ClientCount(5))

	assert.NotPanics(t, func() {
		hub.Broadcast(dto.RealtimeEvent{Type: "notification.read", UserID: 5})
	})
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	hub := NewHub(1, logger.NewNopLogger())
	c := hub.Register(3)

	hub.Broadcast(dto.RealtimeEvent{Type: "first", UserID: 3})
	hub.Broadcast(dto.RealtimeEvent{Type: "second", UserID: 3})

	assert.Equal(t, "first", (<-c.Events()).Type)
	assert.Empty(t, c.Events())
}
