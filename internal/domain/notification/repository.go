package notification

import (
	"context"
	"time"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

// ListFilter narrows a user's notification list. Nil fields do not filter.
type ListFilter struct {
	UserID   uint
	Type     *vo.NotificationType
	Priority *vo.Priority
	Status   *vo.Status
	Read     *bool
	Limit    int
	Offset   int
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	// GetByID returns nil, nil when the notification does not exist.
	GetByID(ctx context.Context, id uint) (*Notification, error)
	Delete(ctx context.Context, id uint) error
	// List returns a page ordered newest first plus the unpaged total.
	List(ctx context.Context, filter ListFilter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	// MarkAsRead stores the read state only if the row is still unread and
	// reports whether it did.
	MarkAsRead(ctx context.Context, notification *Notification) (bool, error)
	// MarkAllAsRead stamps every unread notification of the user with readAt
	// and returns how many rows changed.
	MarkAllAsRead(ctx context.Context, userID uint, readAt time.Time) (int64, error)
	// ListPending returns the oldest PENDING notifications first.
	ListPending(ctx context.Context, limit int) ([]*Notification, error)
	// UpdateDeliveryStatus stores a SENT or FAILED outcome only if the row is
	// still PENDING and reports whether it did.
	UpdateDeliveryStatus(ctx context.Context, notification *Notification) (bool, error)
	// DeleteReadBefore removes up to limit READ notifications read before cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

type PreferenceRepository interface {
	// GetByUserID returns nil, nil when the user has no saved preference.
	GetByUserID(ctx context.Context, userID uint) (*Preference, error)
	Create(ctx context.Context, preference *Preference) error
	// Update persists only the switches set in changes, so concurrent
	// updates of different switches do not overwrite each other.
	Update(ctx context.Context, preference *Preference, changes PreferenceUpdate) error
}

// Recipient is the contact information needed by out-of-app channels.
type Recipient struct {
	UserID   uint
	Email    string
	FullName string
}

type RecipientDirectory interface {
	// GetRecipient returns nil, nil for an unknown user.
	GetRecipient(ctx context.Context, userID uint) (*Recipient, error)
}
