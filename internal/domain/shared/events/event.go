package events

import (
	"context"
	"time"
)

// DomainEvent represents a domain event interface
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
	// GetVersion returns the event version for schema evolution
	GetVersion() int
}

// BaseEvent provides common fields for all domain events
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string {
	return e.AggregateID
}

func (e BaseEvent) GetEventType() string {
	return e.EventType
}

func (e BaseEvent) GetOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BaseEvent) GetVersion() int {
	return e.Version
}

// PayloadEvent is a business event published by another part of the
// platform (bookings, payments, events catalogue) with a free-form payload.
type PayloadEvent struct {
	BaseEvent
	Payload map[string]any `json:"payload"`
}

// NewPayloadEvent builds a version 1 event stamped with occurredAt.
func NewPayloadEvent(eventType, aggregateID string, payload map[string]any, occurredAt time.Time) PayloadEvent {
	if payload == nil {
		payload = map[string]any{}
	}
	return PayloadEvent{
		BaseEvent: BaseEvent{
			AggregateID: aggregateID,
			EventType:   eventType,
			OccurredAt:  occurredAt,
			Version:     1,
		},
		Payload: payload,
	}
}

// EventHandler represents a handler for domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	CanHandle(eventType string) bool
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishAll(events []DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	Subscribe(eventType string, handler EventHandler) error
	Unsubscribe(eventType string, handler EventHandler) error
}

// EventDispatcher combines publisher and subscriber functionality
type EventDispatcher interface {
	EventPublisher
	EventSubscriber

	Start() error
	Stop() error
}
