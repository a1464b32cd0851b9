// Package realtime fans notification events out to the SSE and WebSocket
// connections open on this instance.
package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/shared/logger"
)

const defaultClientBuffer = 16

// Client is one open stream for a user.
type Client struct {
	ID     string
	UserID uint
	events chan dto.RealtimeEvent
}

// Events is closed when the client is unregistered.
func (c *Client) Events() <-chan dto.RealtimeEvent {
	return c.events
}

type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[string]*Client
	buffer  int
	logger  logger.Interface
}

func NewHub(buffer int, logger logger.Interface) *Hub {
	if buffer <= 0 {
		buffer = defaultClientBuffer
	}
	return &Hub{
		clients: make(map[uint]map[string]*Client),
		buffer:  buffer,
		logger:  logger,
	}
}

func (h *Hub) Register(userID uint) *Client {
	c := &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		events: make(chan dto.RealtimeEvent, h.buffer),
	}

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[string]*Client)
	}
	h.clients[userID][c.ID] = c
	h.mu.Unlock()

	h.logger.Debugw("realtime client registered", "client_id", c.ID, "user_id", userID)
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userClients, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := userClients[c.ID]; !ok {
		return
	}
	delete(userClients, c.ID)
	if len(userClients) == 0 {
		delete(h.clients, c.UserID)
	}
	close(c.events)

	h.logger.Debugw("realtime client unregistered", "client_id", c.ID, "user_id", c.UserID)
}

// Broadcast hands event to every client of event.UserID. A client whose
// buffer is full misses the event; the next poll catches it up.
func (h *Hub) Broadcast(event dto.RealtimeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients[event.UserID] {
		select {
		case c.events <- event:
		default:
			h.logger.Warnw("realtime client too slow, dropping event",
				"client_id", c.ID,
				"user_id", c.UserID,
				"event_type", event.Type,
			)
		}
	}
}

// Publish broadcasts locally. It lets the hub stand in for the Redis bus on
// a single instance.
func (h *Hub) Publish(ctx context.Context, event dto.RealtimeEvent) error {
	h.Broadcast(event)
	return nil
}

func (h *Hub) ClientCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
