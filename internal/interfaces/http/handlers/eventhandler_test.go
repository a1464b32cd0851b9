package handlers

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edofi/fiwe/internal/domain/shared/events"
	"github.com/edofi/fiwe/internal/interfaces/http/handlers/testutil"
	"github.com/edofi/fiwe/internal/shared/constants"
	"github.com/edofi/fiwe/internal/shared/logger"
)

type recordingPublisher struct {
	events []events.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(event events.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) PublishAll(evts []events.DomainEvent) error {
	for _, e := range evts {
		if err := p.Publish(e); err != nil {
			return err
		}
	}
	return nil
}

func TestPublishEvent(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		pub := &recordingPublisher{}
		handler := NewBusinessEventHandler(pub, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/notification-events", map[string]any{
			"type":         "booking.created",
			"aggregate_id": "booking-17",
			"payload":      map[string]any{"user_id": 42, "participant_name": "Marie Dupont", "event_title": "Jazz Night", "event_id": 7},
		})
		testutil.SetAuthContext(c, 1, constants.RoleService)

		handler.PublishEvent(c)

		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, pub.events, 1)
		pe, ok := pub.events[0].(events.PayloadEvent)
		require.True(t, ok)
		assert.Equal(t, "booking.created", pe.GetEventType())
		assert.Equal(t, "booking-17", pe.GetAggregateID())
		assert.Equal(t, "Jazz Night", pe.Payload["event_title"])
	})

	t.Run("unknown type", func(t *testing.T) {
		pub := &recordingPublisher{}
		handler := NewBusinessEventHandler(pub, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/notification-events", map[string]any{
			"type":    "order.shipped",
			"payload": map[string]any{},
		})

		handler.PublishEvent(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, pub.events)
	})

	t.Run("missing payload", func(t *testing.T) {
		handler := NewBusinessEventHandler(&recordingPublisher{}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/notification-events", map[string]any{"type": "booking.created"})

		handler.PublishEvent(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("queue full", func(t *testing.T) {
		handler := NewBusinessEventHandler(&recordingPublisher{err: stderrors.New("event channel is full")}, logger.NewNopLogger())

		c, w := testutil.NewTestContext(http.MethodPost, "/notification-events", map[string]any{
			"type":    "follower.new",
			"payload": map[string]any{"user_id": 5},
		})

		handler.PublishEvent(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
