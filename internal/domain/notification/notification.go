package notification

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/edofi/fiwe/internal/domain/notification/templates"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/biztime"
)

const (
	MaxTitleLength   = 200
	MaxMessageLength = 5000
)

// Notification is a single alert addressed to one user. Its status only moves
// forward: PENDING to SENT or FAILED, and any of those to READ.
type Notification struct {
	id               uint
	userID           uint
	notificationType vo.NotificationType
	priority         vo.Priority
	title            string
	message          string
	data             map[string]any
	status           vo.Status
	readAt           *time.Time
	sentAt           *time.Time
	version          int
	createdAt        time.Time
	updatedAt        time.Time
	events           []interface{}
	mu               sync.RWMutex
}

// NewNotification validates input and returns a PENDING notification. An
// empty priority resolves to the type's catalog default.
func NewNotification(
	userID uint,
	notificationType vo.NotificationType,
	priority vo.Priority,
	title string,
	message string,
	data map[string]any,
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}
	if priority == "" {
		priority = templates.DefaultPriority(notificationType)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if err := validateContent(title, message); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}

	now := biztime.NowUTC()
	n := &Notification{
		userID:           userID,
		notificationType: notificationType,
		priority:         priority,
		title:            title,
		message:          message,
		data:             data,
		status:           vo.StatusPending,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
		events:           []interface{}{},
	}

	return n, nil
}

// ReconstructNotification rebuilds a notification from storage.
func ReconstructNotification(
	id uint,
	userID uint,
	notificationType vo.NotificationType,
	priority vo.Priority,
	title string,
	message string,
	data map[string]any,
	status vo.Status,
	readAt, sentAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if status.IsRead() != (readAt != nil) {
		return nil, fmt.Errorf("notification %d: read_at must be set if and only if status is READ", id)
	}
	if data == nil {
		data = map[string]any{}
	}

	return &Notification{
		id:               id,
		userID:           userID,
		notificationType: notificationType,
		priority:         priority,
		title:            title,
		message:          message,
		data:             data,
		status:           status,
		readAt:           readAt,
		sentAt:           sentAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		events:           []interface{}{},
	}, nil
}

func validateContent(title, message string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLength)
	}
	if message == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", MaxMessageLength)
	}
	return nil
}

func (n *Notification) ID() uint {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.id
}

func (n *Notification) UserID() uint {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.userID
}

func (n *Notification) Type() vo.NotificationType {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.notificationType
}

// Category is resolved from the template catalog.
func (n *Notification) Category() vo.Category {
	c, _ := templates.CategoryOf(n.Type())
	return c
}

func (n *Notification) Priority() vo.Priority {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.priority
}

func (n *Notification) Title() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.title
}

func (n *Notification) Message() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.message
}

// Data returns a shallow copy of the payload.
func (n *Notification) Data() map[string]any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]any, len(n.data))
	for k, v := range n.data {
		out[k] = v
	}
	return out
}

func (n *Notification) Status() vo.Status {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.status
}

func (n *Notification) ReadAt() *time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.readAt
}

func (n *Notification) SentAt() *time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sentAt
}

func (n *Notification) IsRead() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.status.IsRead()
}

func (n *Notification) Version() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.version
}

func (n *Notification) CreatedAt() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.createdAt
}

func (n *Notification) UpdatedAt() time.Time {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.updatedAt
}

// IsOwnedBy reports whether userID is the recipient.
func (n *Notification) IsOwnedBy(userID uint) bool {
	return n.UserID() == userID
}

// SetID assigns the store-generated ID and records the creation event.
func (n *Notification) SetID(id uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id

	n.recordEventUnsafe(NotificationCreatedEvent{
		NotificationID: id,
		UserID:         n.userID,
		Type:           n.notificationType,
		Priority:       n.priority,
		Title:          n.title,
		CreatedAt:      n.createdAt,
	})
	return nil
}

// MarkAsRead moves the notification to READ. Reading an already read
// notification is a no-op that leaves read_at untouched.
func (n *Notification) MarkAsRead() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.status.IsRead() {
		return nil
	}

	now := biztime.NowUTC()
	n.status = vo.StatusRead
	n.readAt = &now
	n.updatedAt = now
	n.version++

	n.recordEventUnsafe(NotificationReadEvent{
		NotificationID: n.id,
		UserID:         n.userID,
		ReadAt:         now,
	})
	return nil
}

// MarkAsSent records a successful channel delivery.
func (n *Notification) MarkAsSent() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.status.IsPending() {
		return fmt.Errorf("cannot mark notification as sent from status %s", n.status)
	}

	now := biztime.NowUTC()
	n.status = vo.StatusSent
	n.sentAt = &now
	n.updatedAt = now
	n.version++
	return nil
}

// MarkAsFailed records that every attempted channel failed.
func (n *Notification) MarkAsFailed() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.status.IsPending() {
		return fmt.Errorf("cannot mark notification as failed from status %s", n.status)
	}

	n.status = vo.StatusFailed
	n.updatedAt = biztime.NowUTC()
	n.version++
	return nil
}

func (n *Notification) recordEventUnsafe(event interface{}) {
	n.events = append(n.events, event)
}

// GetEvents drains the pending domain events.
func (n *Notification) GetEvents() []interface{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	events := make([]interface{}, len(n.events))
	copy(events, n.events)
	n.events = []interface{}{}
	return events
}

func (n *Notification) ClearEvents() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = []interface{}{}
}
