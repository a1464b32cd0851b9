// Package triggers turns business happenings (a booking, a payment, an event
// change) into template notifications. Triggers are fire-and-forget: they
// never fail the business action that called them.
package triggers

import (
	"context"
	"time"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// TemplateCreator creates a notification from the type's template, honouring
// the recipient's preferences.
type TemplateCreator interface {
	Execute(ctx context.Context, req dto.CreateFromTemplateRequest) (*dto.NotificationResponse, error)
}

type Notifier struct {
	creator TemplateCreator
	logger  logger.Interface
}

func NewNotifier(creator TemplateCreator, logger logger.Interface) *Notifier {
	return &Notifier{
		creator: creator,
		logger:  logger,
	}
}

// OnNewBooking tells an organizer that someone booked their event.
func (n *Notifier) OnNewBooking(ctx context.Context, organizerID uint, participantName, eventTitle string, eventID uint) {
	n.notify(ctx, organizerID, vo.NotificationTypeNewBooking,
		map[string]any{"participant_name": participantName, "event_title": eventTitle},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "participantName": participantName},
	)
}

func (n *Notifier) OnBookingConfirmed(ctx context.Context, userID uint, eventTitle, bookingReference string, eventID uint) {
	n.notify(ctx, userID, vo.NotificationTypeBookingConfirmed,
		map[string]any{"event_title": eventTitle, "booking_reference": bookingReference},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "bookingReference": bookingReference},
	)
}

func (n *Notifier) OnBookingCancelled(ctx context.Context, organizerID uint, participantName, eventTitle string, eventID uint) {
	n.notify(ctx, organizerID, vo.NotificationTypeBookingCancelled,
		map[string]any{"participant_name": participantName, "event_title": eventTitle},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "participantName": participantName},
	)
}

// OnPaymentReceived reports an amount in FCFA.
func (n *Notifier) OnPaymentReceived(ctx context.Context, userID uint, amount int64, eventTitle string, eventID uint) {
	n.notify(ctx, userID, vo.NotificationTypePaymentReceived,
		map[string]any{"amount": amount, "event_title": eventTitle},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "amount": amount},
	)
}

func (n *Notifier) OnPaymentFailed(ctx context.Context, userID uint, amount int64, eventTitle, reason string, eventID uint) {
	n.notify(ctx, userID, vo.NotificationTypePaymentFailed,
		map[string]any{"amount": amount, "event_title": eventTitle, "reason": reason},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "amount": amount, "reason": reason},
	)
}

func (n *Notifier) OnEventUpdated(ctx context.Context, userID uint, eventTitle, changes string, eventID uint) {
	n.notify(ctx, userID, vo.NotificationTypeEventUpdated,
		map[string]any{"event_title": eventTitle, "changes": changes},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "changes": changes},
	)
}

func (n *Notifier) OnEventCancelled(ctx context.Context, userID uint, eventTitle, reason string, eventID uint) {
	n.notify(ctx, userID, vo.NotificationTypeEventCancelled,
		map[string]any{"event_title": eventTitle, "reason": reason},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "reason": reason},
	)
}

// OnEventReminder picks the one hour reminder when the event starts within
// the next hour and the day-before reminder otherwise.
func (n *Notifier) OnEventReminder(ctx context.Context, userID uint, eventTitle string, startsAt time.Time, location string, eventID uint) {
	notificationType := vo.NotificationTypeEventReminder24h
	if time.Until(startsAt) <= time.Hour {
		notificationType = vo.NotificationTypeEventReminder1h
	}
	n.notify(ctx, userID, notificationType,
		map[string]any{"event_title": eventTitle, "event_time": biztime.ToBizTimezone(startsAt).Format("15:04"), "location": location},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "startsAt": startsAt, "location": location},
	)
}

func (n *Notifier) OnNewFollower(ctx context.Context, userID uint, followerName string, followerID uint) {
	n.notify(ctx, userID, vo.NotificationTypeNewFollower,
		map[string]any{"follower_name": followerName},
		map[string]any{"followerId": followerID, "followerName": followerName},
	)
}

func (n *Notifier) OnNewReview(ctx context.Context, organizerID uint, reviewerName string, rating int, eventTitle string, eventID uint) {
	n.notify(ctx, organizerID, vo.NotificationTypeNewReview,
		map[string]any{"reviewer_name": reviewerName, "rating": rating, "event_title": eventTitle},
		map[string]any{"eventId": eventID, "eventTitle": eventTitle, "reviewerName": reviewerName, "rating": rating},
	)
}

func (n *Notifier) OnSystemMaintenance(ctx context.Context, userID uint, startTime time.Time, duration string) {
	n.notify(ctx, userID, vo.NotificationTypeSystemMaintenance,
		map[string]any{"start_time": startTime, "duration": duration},
		map[string]any{"startTime": startTime, "duration": duration},
	)
}

// OnSecurityAlert is urgent and reaches the user whatever their preferences.
func (n *Notifier) OnSecurityAlert(ctx context.Context, userID uint, details string) {
	n.notify(ctx, userID, vo.NotificationTypeSecurityAlert,
		map[string]any{"details": details},
		map[string]any{"details": details},
	)
}

func (n *Notifier) notify(ctx context.Context, userID uint, t vo.NotificationType, vars, data map[string]any) {
	resp, err := n.creator.Execute(ctx, dto.CreateFromTemplateRequest{
		UserID:    userID,
		Type:      t.String(),
		Variables: vars,
		Data:      data,
	})
	if err != nil {
		n.logger.Errorw("notification trigger failed", "type", t, "user_id", userID, "error", err)
		return
	}
	if resp == nil {
		n.logger.Debugw("notification trigger skipped by preferences", "type", t, "user_id", userID)
	}
}
