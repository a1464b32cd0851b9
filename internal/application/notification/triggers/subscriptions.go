package triggers

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/edofi/fiwe/internal/domain/shared/events"
)

// Business event types accepted by the triggers.
const (
	EventBookingCreated    = "booking.created"
	EventBookingConfirmed  = "booking.confirmed"
	EventBookingCancelled  = "booking.cancelled"
	EventPaymentReceived   = "payment.received"
	EventPaymentFailed     = "payment.failed"
	EventEventUpdated      = "event.updated"
	EventEventCancelled    = "event.cancelled"
	EventEventReminder     = "event.reminder"
	EventFollowerNew       = "follower.new"
	EventReviewNew         = "review.new"
	EventSystemMaintenance = "system.maintenance"
	EventSecurityAlert     = "security.alert"
)

type bookingPayload struct {
	UserID           uint   `json:"user_id"`
	ParticipantName  string `json:"participant_name"`
	EventTitle       string `json:"event_title"`
	EventID          uint   `json:"event_id"`
	BookingReference string `json:"booking_reference"`
}

type paymentPayload struct {
	UserID     uint   `json:"user_id"`
	Amount     int64  `json:"amount"`
	EventTitle string `json:"event_title"`
	EventID    uint   `json:"event_id"`
	Reason     string `json:"reason"`
}

type eventChangePayload struct {
	UserIDs    []uint    `json:"user_ids"`
	EventTitle string    `json:"event_title"`
	EventID    uint      `json:"event_id"`
	Changes    string    `json:"changes"`
	Reason     string    `json:"reason"`
	StartsAt   time.Time `json:"starts_at"`
	Location   string    `json:"location"`
}

type followerPayload struct {
	UserID       uint   `json:"user_id"`
	FollowerName string `json:"follower_name"`
	FollowerID   uint   `json:"follower_id"`
}

type reviewPayload struct {
	UserID       uint   `json:"user_id"`
	ReviewerName string `json:"reviewer_name"`
	Rating       int    `json:"rating"`
	EventTitle   string `json:"event_title"`
	EventID      uint   `json:"event_id"`
}

type systemPayload struct {
	UserIDs   []uint    `json:"user_ids"`
	StartTime time.Time `json:"start_time"`
	Duration  string    `json:"duration"`
	Details   string    `json:"details"`
}

// EventTypes lists every business event the notifier subscribes to.
func EventTypes() []string {
	return []string{
		EventBookingCreated, EventBookingConfirmed, EventBookingCancelled,
		EventPaymentReceived, EventPaymentFailed,
		EventEventUpdated, EventEventCancelled, EventEventReminder,
		EventFollowerNew, EventReviewNew,
		EventSystemMaintenance, EventSecurityAlert,
	}
}

// Register subscribes the notifier to every business event type.
func (n *Notifier) Register(subscriber events.EventSubscriber) error {
	for _, eventType := range EventTypes() {
		if err := subscriber.Subscribe(eventType, events.NewSimpleEventHandler(eventType, n.HandleEvent)); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

// HandleEvent routes one business event to its trigger. A malformed payload
// is an error for the dispatcher to log; trigger failures are not.
func (n *Notifier) HandleEvent(ctx context.Context, event events.DomainEvent) error {
	pe, ok := event.(events.PayloadEvent)
	if !ok {
		return fmt.Errorf("unsupported event %T", event)
	}

	switch pe.GetEventType() {
	case EventBookingCreated, EventBookingConfirmed, EventBookingCancelled:
		var p bookingPayload
		if err := decodePayload(pe.Payload, &p); err != nil {
			return err
		}
		switch pe.GetEventType() {
		case EventBookingCreated:
			n.OnNewBooking(ctx, p.UserID, p.ParticipantName, p.EventTitle, p.EventID)
		case EventBookingConfirmed:
			n.OnBookingConfirmed(ctx, p.UserID, p.EventTitle, p.BookingReference, p.EventID)
		default:
			n.OnBookingCancelled(ctx, p.UserID, p.ParticipantName, p.EventTitle, p.EventID)
		}

	case EventPaymentReceived, EventPaymentFailed:
		var p paymentPayload
		if err := decodePayload(pe.Payload, &p); err != nil {
			return err
		}
		if pe.GetEventType() == EventPaymentReceived {
			n.OnPaymentReceived(ctx, p.UserID, p.Amount, p.EventTitle, p.EventID)
		} else {
			n.OnPaymentFailed(ctx, p.UserID, p.Amount, p.EventTitle, p.Reason, p.EventID)
		}

	case EventEventUpdated, EventEventCancelled, EventEventReminder:
		var p eventChangePayload
		if err := decodePayload(pe.Payload, &p); err != nil {
			return err
		}
		for _, userID := range p.UserIDs {
			switch pe.GetEventType() {
			case EventEventUpdated:
				n.OnEventUpdated(ctx, userID, p.EventTitle, p.Changes, p.EventID)
			case EventEventCancelled:
				n.OnEventCancelled(ctx, userID, p.EventTitle, p.Reason, p.EventID)
			default:
				n.OnEventReminder(ctx, userID, p.EventTitle, p.StartsAt, p.Location, p.EventID)
			}
		}

	case EventFollowerNew:
		var p followerPayload
		if err := decodePayload(pe.Payload, &p); err != nil {
			return err
		}
		n.OnNewFollower(ctx, p.UserID, p.FollowerName, p.FollowerID)

	case EventReviewNew:
		var p reviewPayload
		if err := decodePayload(pe.Payload, &p); err != nil {
			return err
		}
		n.OnNewReview(ctx, p.UserID, p.ReviewerName, p.Rating, p.EventTitle, p.EventID)

	case EventSystemMaintenance, EventSecurityAlert:
		var p systemPayload
		if err := decodePayload(pe.Payload, &p); err != nil {
			return err
		}
		for _, userID := range p.UserIDs {
			if pe.GetEventType() == EventSystemMaintenance {
				n.OnSystemMaintenance(ctx, userID, p.StartTime, p.Duration)
			} else {
				n.OnSecurityAlert(ctx, userID, p.Details)
			}
		}

	default:
		return fmt.Errorf("unknown business event type: %s", pe.GetEventType())
	}
	return nil
}

// decodePayload maps the free-form payload onto a typed struct.
func decodePayload(payload map[string]any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid event payload: %w", err)
	}
	return nil
}

// IsKnownEventType reports whether eventType has a trigger.
func IsKnownEventType(eventType string) bool {
	return slices.Contains(EventTypes(), eventType)
}
