package notify

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Tab is the open view of the center.
type Tab string

const (
	TabNotifications Tab = "notifications"
	TabPreferences   Tab = "preferences"
)

const (
	DefaultPollInterval   = 30 * time.Second
	DefaultMaxPollBackoff = 5 * time.Minute
)

var (
	ErrCenterClosed         = errors.New("notification center is closed")
	ErrUnknownTab           = errors.New("unknown tab")
	ErrUnknownPreference    = errors.New("unknown preference key")
	ErrPreferencesNotLoaded = errors.New("preferences are not loaded")
	errEmptyListResponse    = errors.New("empty list response")
)

// Service is the part of the API the center talks to. *Client implements it.
type Service interface {
	ListNotifications(ctx context.Context, userID uint, filter ListFilter) (*ListResult, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	GetPreferences(ctx context.Context, userID uint) (*Preferences, error)
	UpdatePreferences(ctx context.Context, userID uint, update PreferenceUpdate) (*Preferences, error)
	MarkAsRead(ctx context.Context, id uint) (*Notification, error)
	MarkAllAsRead(ctx context.Context, userID uint) (int64, error)
	DeleteNotification(ctx context.Context, id uint) error
}

// Snapshot is a copy of the center state at one instant.
type Snapshot struct {
	Open            bool
	Tab             Tab
	FilterPanelOpen bool
	Visible         bool
	Filters         ListFilter
	Notifications   []Notification
	Total           int64
	UnreadCount     int64
	Preferences     *Preferences
	Loading         bool
	// Error is the failure of the latest operation, nil once an operation
	// succeeds again.
	Error error
}

type CenterOption func(*Center)

// WithPollInterval sets how often an open, visible center refreshes.
func WithPollInterval(d time.Duration) CenterOption {
	return func(c *Center) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithMaxPollBackoff caps the delay between polls after repeated failures.
func WithMaxPollBackoff(d time.Duration) CenterOption {
	return func(c *Center) {
		if d > 0 {
			c.maxBackoff = d
		}
	}
}

// WithOnChange registers a callback invoked with a fresh snapshot after
// every state change. It runs on the goroutine that made the change and
// must not call back into the center synchronously.
func WithOnChange(fn func(Snapshot)) CenterOption {
	return func(c *Center) {
		c.onChange = fn
	}
}

// Center keeps one user's notification list, unread count and preferences
// for display. It is closed until Open; while open and visible it polls.
// Mutations are applied locally first and rolled back if the server
// rejects them.
type Center struct {
	svc          Service
	userID       uint
	pollInterval time.Duration
	maxBackoff   time.Duration
	onChange     func(Snapshot)

	mu          sync.Mutex
	open        bool
	visible     bool
	filterPanel bool
	tab         Tab
	filters     ListFilter
	items       []Notification
	total       int64
	unread      int64
	prefs       *Preferences
	loading     int
	err         error
	retry       func(context.Context) error

	listSeq    uint64
	listCancel context.CancelFunc
	countSeq   uint64

	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

func NewCenter(svc Service, userID uint, opts ...CenterOption) *Center {
	c := &Center{
		svc:          svc,
		userID:       userID,
		pollInterval: DefaultPollInterval,
		maxBackoff:   DefaultMaxPollBackoff,
		visible:      true,
		tab:          TabNotifications,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open shows the notifications tab, loads the list, preferences and unread
// count once, then starts polling. Opening an open center does nothing.
func (c *Center) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return nil
	}
	c.open = true
	c.tab = TabNotifications
	c.mu.Unlock()
	c.notify()

	err := c.loadAll(ctx)

	c.mu.Lock()
	start := c.open && c.visible
	c.mu.Unlock()
	if start {
		c.startPoller(c.pollInterval)
	}
	return err
}

// Close hides the center, stops polling and abandons an in-flight list
// load. Loaded data is kept.
func (c *Center) Close() {
	c.stopPoller()

	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return
	}
	c.open = false
	c.filterPanel = false
	if c.listCancel != nil {
		c.listCancel()
		c.listCancel = nil
	}
	c.mu.Unlock()
	c.notify()
}

// SwitchTab changes the open view without reloading anything.
func (c *Center) SwitchTab(tab Tab) error {
	if tab != TabNotifications && tab != TabPreferences {
		return fmt.Errorf("%w: %s", ErrUnknownTab, tab)
	}

	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrCenterClosed
	}
	c.tab = tab
	c.mu.Unlock()
	c.notify()
	return nil
}

// ToggleFilterPanel shows or hides the filter panel and returns whether it
// is now visible.
func (c *Center) ToggleFilterPanel() bool {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return false
	}
	c.filterPanel = !c.filterPanel
	shown := c.filterPanel
	c.mu.Unlock()
	c.notify()
	return shown
}

// ApplyFilters reloads the list with filter, replacing the current items.
func (c *Center) ApplyFilters(ctx context.Context, filter ListFilter) error {
	c.mu.Lock()
	c.filters = filter
	c.err = nil
	c.mu.Unlock()

	return c.loadNotifications(ctx)
}

// Refresh reloads the list and the unread count.
func (c *Center) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()

	return errors.Join(c.loadNotifications(ctx), c.loadUnreadCount(ctx))
}

// Retry re-issues the load that failed last, or refreshes when none did.
func (c *Center) Retry(ctx context.Context) error {
	c.mu.Lock()
	retry := c.retry
	c.err = nil
	c.mu.Unlock()

	if retry == nil {
		return c.Refresh(ctx)
	}
	return retry(ctx)
}

// SetVisible pauses polling while the view is hidden. Becoming visible
// again refreshes at once and resumes polling.
func (c *Center) SetVisible(visible bool) {
	c.mu.Lock()
	if c.visible == visible {
		c.mu.Unlock()
		return
	}
	c.visible = visible
	open := c.open
	c.mu.Unlock()

	if open {
		if visible {
			c.startPoller(0)
		} else {
			c.stopPoller()
		}
	}
	c.notify()
}

// MarkAsRead marks one notification read locally, then on the server.
func (c *Center) MarkAsRead(ctx context.Context, id uint) error {
	c.mu.Lock()
	c.err = nil
	var prev Notification
	changed := false
	if i := c.indexOf(id); i >= 0 && !c.items[i].IsRead() {
		prev = c.items[i]
		now := time.Now().UTC()
		c.items[i].Status = StatusRead
		c.items[i].ReadAt = &now
		c.unread = max(c.unread-1, 0)
		changed = true
	}
	c.mu.Unlock()
	c.notify()

	updated, err := c.svc.MarkAsRead(ctx, id)
	if err != nil {
		c.mu.Lock()
		if changed {
			if i := c.indexOf(id); i >= 0 {
				c.items[i] = prev
			}
			c.unread++
		}
		c.err = err
		c.mu.Unlock()
		c.notify()
		return err
	}

	if updated != nil {
		c.mu.Lock()
		if i := c.indexOf(id); i >= 0 {
			c.items[i] = *updated
		}
		c.mu.Unlock()
	}
	return c.loadUnreadCount(ctx)
}

// MarkAllAsRead marks every loaded notification read locally, then asks the
// server to mark all of the user's notifications.
func (c *Center) MarkAllAsRead(ctx context.Context) error {
	c.mu.Lock()
	c.err = nil
	prevUnread := c.unread
	var reverted []Notification
	now := time.Now().UTC()
	for i := range c.items {
		if c.items[i].IsRead() {
			continue
		}
		reverted = append(reverted, c.items[i])
		c.items[i].Status = StatusRead
		c.items[i].ReadAt = &now
	}
	c.unread = 0
	c.mu.Unlock()
	c.notify()

	if _, err := c.svc.MarkAllAsRead(ctx, c.userID); err != nil {
		c.mu.Lock()
		for _, n := range reverted {
			if i := c.indexOf(n.ID); i >= 0 {
				c.items[i] = n
			}
		}
		c.unread = prevUnread
		c.err = err
		c.mu.Unlock()
		c.notify()
		return err
	}

	return c.loadUnreadCount(ctx)
}

// Delete removes a notification locally, then on the server. On failure
// it is put back where it was.
func (c *Center) Delete(ctx context.Context, id uint) error {
	c.mu.Lock()
	c.err = nil
	idx := c.indexOf(id)
	var removed Notification
	if idx >= 0 {
		removed = c.items[idx]
		c.items = slices.Delete(c.items, idx, idx+1)
		c.total = max(c.total-1, 0)
		if !removed.IsRead() {
			c.unread = max(c.unread-1, 0)
		}
	}
	c.mu.Unlock()
	c.notify()

	if err := c.svc.DeleteNotification(ctx, id); err != nil {
		c.mu.Lock()
		if idx >= 0 && c.indexOf(id) < 0 {
			at := min(idx, len(c.items))
			c.items = slices.Insert(c.items, at, removed)
			c.total++
			if !removed.IsRead() {
				c.unread++
			}
		}
		c.err = err
		c.mu.Unlock()
		c.notify()
		return err
	}

	return c.loadUnreadCount(ctx)
}

// TogglePreference flips one switch (see the Pref* keys) locally, then
// saves it.
func (c *Center) TogglePreference(ctx context.Context, key string) error {
	c.mu.Lock()
	if c.prefs == nil {
		c.mu.Unlock()
		return ErrPreferencesNotLoaded
	}
	field := c.prefs.field(key)
	if field == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	c.err = nil
	value := !*field
	*field = value
	c.mu.Unlock()
	c.notify()

	updated, err := c.svc.UpdatePreferences(ctx, c.userID, singlePreference(key, value))

	c.mu.Lock()
	if err != nil {
		if c.prefs != nil {
			if f := c.prefs.field(key); f != nil {
				*f = !value
			}
		}
		c.err = err
	} else if updated != nil {
		c.prefs = updated
	}
	c.mu.Unlock()
	c.notify()
	return err
}

// Snapshot returns a copy of the current state.
func (c *Center) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Open:            c.open,
		Tab:             c.tab,
		FilterPanelOpen: c.filterPanel,
		Visible:         c.visible,
		Filters:         c.filters,
		Notifications:   slices.Clone(c.items),
		Total:           c.total,
		UnreadCount:     c.unread,
		Loading:         c.loading > 0,
		Error:           c.err,
	}
	if c.prefs != nil {
		p := *c.prefs
		s.Preferences = &p
	}
	return s
}

func (c *Center) loadAll(ctx context.Context) error {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()

	return errors.Join(
		c.loadNotifications(ctx),
		c.loadPreferences(ctx),
		c.loadUnreadCount(ctx),
	)
}

// loadNotifications replaces the list. Each call cancels the previous one,
// and a response that is no longer the latest is dropped.
func (c *Center) loadNotifications(ctx context.Context) error {
	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	if c.listCancel != nil {
		c.listCancel()
	}
	lctx, cancel := context.WithCancel(ctx)
	c.listCancel = cancel
	filters := c.filters
	c.loading++
	c.mu.Unlock()
	c.notify()

	res, err := c.svc.ListNotifications(lctx, c.userID, filters)

	c.mu.Lock()
	c.loading--
	if seq != c.listSeq {
		c.mu.Unlock()
		c.notify()
		return nil
	}
	cancel()
	c.listCancel = nil
	if err == nil && res == nil {
		err = errEmptyListResponse
	}
	if err != nil {
		if ctx.Err() == nil {
			c.err = err
			c.retry = c.loadNotifications
		}
		c.mu.Unlock()
		c.notify()
		return err
	}
	c.items = res.Items
	c.total = res.Total
	c.clearRetryLocked()
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Center) loadUnreadCount(ctx context.Context) error {
	c.mu.Lock()
	c.countSeq++
	seq := c.countSeq
	c.mu.Unlock()

	count, err := c.svc.UnreadCount(ctx, c.userID)

	c.mu.Lock()
	if seq != c.countSeq {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		if ctx.Err() == nil {
			c.err = err
			c.retry = c.loadUnreadCount
		}
		c.mu.Unlock()
		c.notify()
		return err
	}
	c.unread = count
	c.clearRetryLocked()
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Center) loadPreferences(ctx context.Context) error {
	prefs, err := c.svc.GetPreferences(ctx, c.userID)

	c.mu.Lock()
	if err != nil {
		if ctx.Err() == nil {
			c.err = err
			c.retry = c.loadPreferences
		}
		c.mu.Unlock()
		c.notify()
		return err
	}
	c.prefs = prefs
	c.clearRetryLocked()
	c.mu.Unlock()
	c.notify()
	return nil
}

// clearRetryLocked forgets the failed load once a load succeeds, unless
// another load of the same operation already failed.
func (c *Center) clearRetryLocked() {
	if c.err == nil {
		c.retry = nil
	}
}

func (c *Center) indexOf(id uint) int {
	return slices.IndexFunc(c.items, func(n Notification) bool { return n.ID == id })
}

func (c *Center) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}

func (c *Center) startPoller(firstDelay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pollCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.pollCancel = cancel
	c.pollDone = done
	go c.poll(ctx, firstDelay, done)
}

func (c *Center) stopPoller() {
	c.mu.Lock()
	cancel, done := c.pollCancel, c.pollDone
	c.pollCancel, c.pollDone = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// poll refreshes every pollInterval. Consecutive failures stretch the delay
// exponentially up to maxBackoff; a success resets it.
func (c *Center) poll(ctx context.Context, delay time.Duration, done chan struct{}) {
	defer close(done)

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.pollInterval
	expBackoff.MaxInterval = c.maxBackoff
	expBackoff.Multiplier = 2
	expBackoff.RandomizationFactor = 0.1
	expBackoff.Reset()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := c.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			delay = expBackoff.NextBackOff()
			if delay == backoff.Stop {
				delay = c.maxBackoff
			}
		} else {
			expBackoff.Reset()
			delay = c.pollInterval
		}
		timer.Reset(delay)
	}
}
