package notification

import (
	"time"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

const (
	EventTypeNotificationCreated = "notification.created"
	EventTypeNotificationRead    = "notification.read"
	EventTypeAllRead             = "notification.all_read"
	EventTypeNotificationDeleted = "notification.deleted"
)

type NotificationCreatedEvent struct {
	NotificationID uint
	UserID         uint
	Type           vo.NotificationType
	Priority       vo.Priority
	Title          string
	CreatedAt      time.Time
}

type NotificationReadEvent struct {
	NotificationID uint
	UserID         uint
	ReadAt         time.Time
}

type AllNotificationsReadEvent struct {
	UserID uint
	Count  int64
	ReadAt time.Time
}

type NotificationDeletedEvent struct {
	NotificationID uint
	UserID         uint
	WasUnread      bool
	DeletedAt      time.Time
}
