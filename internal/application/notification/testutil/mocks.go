// Package testutil provides in-memory implementations of the notification
// ports for use case, trigger and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/domain/notification"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/errors"
)

// MockNotificationRepository keeps copies of the stored aggregates so callers
// mutating a loaded notification do not change the store behind its back.
type MockNotificationRepository struct {
	mu     sync.RWMutex
	items  map[uint]*notification.Notification
	nextID uint

	createError error
	getError    error
	updateError error
	deleteError error
	listError   error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		items: make(map[uint]*notification.Notification),
	}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}

	if n.ID() == 0 {
		m.nextID++
		if err := n.SetID(m.nextID); err != nil {
			return err
		}
	}
	m.items[n.ID()] = CloneNotification(n)
	return nil
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	n, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return CloneNotification(n), nil
}

func (m *MockNotificationRepository) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.items[id]; !ok {
		return errors.NewNotFoundError("notification not found")
	}
	delete(m.items, id)
	return nil
}

func (m *MockNotificationRepository) List(ctx context.Context, filter notification.ListFilter) ([]*notification.Notification, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, 0, m.listError
	}

	matched := make([]*notification.Notification, 0)
	for _, n := range m.items {
		if matches(n, filter) {
			matched = append(matched, n)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt().Equal(matched[j].CreatedAt()) {
			return matched[i].CreatedAt().After(matched[j].CreatedAt())
		}
		return matched[i].ID() > matched[j].ID()
	})

	total := int64(len(matched))
	start := min(filter.Offset, len(matched))
	end := len(matched)
	if filter.Limit > 0 {
		end = min(start+filter.Limit, len(matched))
	}

	page := make([]*notification.Notification, 0, end-start)
	for _, n := range matched[start:end] {
		page = append(page, CloneNotification(n))
	}
	return page, total, nil
}

func matches(n *notification.Notification, f notification.ListFilter) bool {
	if n.UserID() != f.UserID {
		return false
	}
	if f.Type != nil && n.Type() != *f.Type {
		return false
	}
	if f.Priority != nil && n.Priority() != *f.Priority {
		return false
	}
	if f.Status != nil && n.Status() != *f.Status {
		return false
	}
	if f.Read != nil && n.IsRead() != *f.Read {
		return false
	}
	return true
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return 0, m.getError
	}
	var count int64
	for _, n := range m.items {
		if n.UserID() == userID && !n.IsRead() {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, n *notification.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return false, m.updateError
	}
	stored, ok := m.items[n.ID()]
	if !ok || stored.IsRead() {
		return false, nil
	}
	m.items[n.ID()] = CloneNotification(n)
	return true, nil
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uint, readAt time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return 0, m.updateError
	}
	var updated int64
	for id, n := range m.items {
		if n.UserID() != userID || n.IsRead() {
			continue
		}
		at := readAt
		read, err := notification.ReconstructNotification(
			n.ID(), n.UserID(), n.Type(), n.Priority(), n.Title(), n.Message(), n.Data(),
			vo.StatusRead, &at, n.SentAt(), n.Version()+1, n.CreatedAt(), readAt,
		)
		if err != nil {
			return updated, err
		}
		m.items[id] = read
		updated++
	}
	return updated, nil
}

func (m *MockNotificationRepository) ListPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listError != nil {
		return nil, m.listError
	}
	pending := make([]*notification.Notification, 0)
	for _, n := range m.items {
		if n.Status().IsPending() {
			pending = append(pending, CloneNotification(n))
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].ID() < pending[j].ID()
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (m *MockNotificationRepository) UpdateDeliveryStatus(ctx context.Context, n *notification.Notification) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return false, m.updateError
	}
	stored, ok := m.items[n.ID()]
	if !ok || !stored.Status().IsPending() {
		return false, nil
	}
	m.items[n.ID()] = CloneNotification(n)
	return true, nil
}

func (m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return 0, m.deleteError
	}
	var deleted int64
	for id, n := range m.items {
		if limit > 0 && deleted >= int64(limit) {
			break
		}
		if n.IsRead() && n.ReadAt().Before(cutoff) {
			delete(m.items, id)
			deleted++
		}
	}
	return deleted, nil
}

// Put stores n as is, bypassing ID assignment. Useful for seeding read or
// old notifications.
func (m *MockNotificationRepository) Put(n *notification.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[n.ID()] = CloneNotification(n)
	if n.ID() > m.nextID {
		m.nextID = n.ID()
	}
}

func (m *MockNotificationRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *MockNotificationRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockNotificationRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

func (m *MockNotificationRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

func (m *MockNotificationRepository) SetDeleteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteError = err
}

func (m *MockNotificationRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listError = err
}

// CloneNotification returns an independent copy of n without pending events.
func CloneNotification(n *notification.Notification) *notification.Notification {
	clone, err := notification.ReconstructNotification(
		n.ID(), n.UserID(), n.Type(), n.Priority(), n.Title(), n.Message(), n.Data(),
		n.Status(), n.ReadAt(), n.SentAt(), n.Version(), n.CreatedAt(), n.UpdatedAt(),
	)
	if err != nil {
		panic(fmt.Sprintf("clone notification %d: %v", n.ID(), err))
	}
	return clone
}

// MockPreferenceRepository is an in-memory notification.PreferenceRepository.
type MockPreferenceRepository struct {
	mu     sync.RWMutex
	prefs  map[uint]*notification.Preference
	nextID uint

	createError error
	getError    error
	updateError error
}

func NewMockPreferenceRepository() *MockPreferenceRepository {
	return &MockPreferenceRepository{
		prefs: make(map[uint]*notification.Preference),
	}
}

func (m *MockPreferenceRepository) GetByUserID(ctx context.Context, userID uint) (*notification.Preference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}
	p, ok := m.prefs[userID]
	if !ok {
		return nil, nil
	}
	return clonePreference(p), nil
}

func (m *MockPreferenceRepository) Create(ctx context.Context, p *notification.Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.prefs[p.UserID()]; exists {
		return fmt.Errorf("UNIQUE constraint failed: notification_preferences.user_id")
	}
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.prefs[p.UserID()] = clonePreference(p)
	return nil
}

// Update applies only the set fields to the stored copy, like the column
// update of the gorm repository.
func (m *MockPreferenceRepository) Update(ctx context.Context, p *notification.Preference, changes notification.PreferenceUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateError != nil {
		return m.updateError
	}
	stored, exists := m.prefs[p.UserID()]
	if !exists {
		return fmt.Errorf("preference for user %d not found", p.UserID())
	}
	stored.Apply(changes)
	return nil
}

// Seed stores a preference built from DefaultPreference after applying u.
func (m *MockPreferenceRepository) Seed(userID uint, u notification.PreferenceUpdate) *notification.Preference {
	p := notification.DefaultPreference(userID)
	p.Apply(u)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	_ = p.SetID(m.nextID)
	m.prefs[userID] = clonePreference(p)
	return p
}

func (m *MockPreferenceRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.prefs)
}

func (m *MockPreferenceRepository) SetCreateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createError = err
}

func (m *MockPreferenceRepository) SetGetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getError = err
}

func (m *MockPreferenceRepository) SetUpdateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateError = err
}

func clonePreference(p *notification.Preference) *notification.Preference {
	if p.ID() == 0 {
		return p
	}
	clone, err := notification.ReconstructPreference(p.ID(), p.UserID(), p.Channels(), p.Categories(), p.CreatedAt(), p.UpdatedAt())
	if err != nil {
		panic(fmt.Sprintf("clone preference %d: %v", p.ID(), err))
	}
	return clone
}

// MockRecipientDirectory resolves recipients from a fixed map.
type MockRecipientDirectory struct {
	mu         sync.RWMutex
	recipients map[uint]*notification.Recipient
	err        error
}

func NewMockRecipientDirectory() *MockRecipientDirectory {
	return &MockRecipientDirectory{recipients: make(map[uint]*notification.Recipient)}
}

func (m *MockRecipientDirectory) Add(userID uint, email, fullName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipients[userID] = &notification.Recipient{UserID: userID, Email: email, FullName: fullName}
}

func (m *MockRecipientDirectory) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockRecipientDirectory) GetRecipient(ctx context.Context, userID uint) (*notification.Recipient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.recipients[userID], nil
}

// SentEmail records one SendNotificationEmail call.
type SentEmail struct {
	To      string
	Name    string
	Subject string
	Text    string
	Body    string
}

type MockEmailSender struct {
	mu   sync.Mutex
	sent []SentEmail
	err  error
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendNotificationEmail(ctx context.Context, to, name, subject, text, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, SentEmail{To: to, Name: name, Subject: subject, Text: text, Body: body})
	return nil
}

func (m *MockEmailSender) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockEmailSender) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}

// MockRealtimePublisher records published events.
type MockRealtimePublisher struct {
	mu     sync.Mutex
	events []dto.RealtimeEvent
	err    error
}

func NewMockRealtimePublisher() *MockRealtimePublisher {
	return &MockRealtimePublisher{}
}

func (m *MockRealtimePublisher) Publish(ctx context.Context, event dto.RealtimeEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockRealtimePublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockRealtimePublisher) Events() []dto.RealtimeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dto.RealtimeEvent, len(m.events))
	copy(out, m.events)
	return out
}

// MockUnreadCountCache is a map backed cache that counts loads and
// invalidations.
type MockUnreadCountCache struct {
	mu            sync.Mutex
	counts        map[uint]int64
	Loads         int
	Invalidations int
}

func NewMockUnreadCountCache() *MockUnreadCountCache {
	return &MockUnreadCountCache{counts: make(map[uint]int64)}
}

func (m *MockUnreadCountCache) GetOrLoad(ctx context.Context, userID uint, load func(ctx context.Context) (int64, error)) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if count, ok := m.counts[userID]; ok {
		return count, nil
	}
	count, err := load(ctx)
	if err != nil {
		return 0, err
	}
	m.Loads++
	m.counts[userID] = count
	return count, nil
}

func (m *MockUnreadCountCache) Invalidate(ctx context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidations++
	delete(m.counts, userID)
	return nil
}
