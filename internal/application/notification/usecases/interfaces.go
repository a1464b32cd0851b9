package usecases

import (
	"context"

	"github.com/edofi/fiwe/internal/application/notification/dto"
)

// UnreadCountCache memoises per-user unread counts. load is called on a miss.
type UnreadCountCache interface {
	GetOrLoad(ctx context.Context, userID uint, load func(ctx context.Context) (int64, error)) (int64, error)
	Invalidate(ctx context.Context, userID uint) error
}

// RealtimePublisher fans an event out to the user's open streams.
type RealtimePublisher interface {
	Publish(ctx context.Context, event dto.RealtimeEvent) error
}

// EmailSender delivers the email channel. text is the raw message for
// plain-text clients, htmlBody its sanitised HTML rendering.
type EmailSender interface {
	SendNotificationEmail(ctx context.Context, to, name, subject, text, htmlBody string) error
}
