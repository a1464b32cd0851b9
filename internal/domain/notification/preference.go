package notification

import (
	"fmt"
	"sync"
	"time"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
	"github.com/edofi/fiwe/internal/shared/biztime"
)

// Preference holds one user's channel and category switches.
type Preference struct {
	id     uint
	userID uint

	channels   map[vo.Channel]bool
	categories map[vo.Category]bool

	createdAt time.Time
	updatedAt time.Time
	mu        sync.RWMutex
}

// PreferenceUpdate is a partial update; nil fields are left untouched.
type PreferenceUpdate struct {
	EmailEnabled *bool
	PushEnabled  *bool
	SMSEnabled   *bool
	InAppEnabled *bool

	PlanningEnabled     *bool
	BookingEnabled      *bool
	SocialEnabled       *bool
	PerformanceEnabled  *bool
	SystemEnabled       *bool
	CommercialEnabled   *bool
	PersonalizedEnabled *bool
	UrgentEnabled       *bool
}

// IsEmpty reports whether the update changes nothing.
func (u PreferenceUpdate) IsEmpty() bool {
	for _, v := range u.fields() {
		if v != nil {
			return false
		}
	}
	return true
}

func (u PreferenceUpdate) channelFields() map[vo.Channel]*bool {
	return map[vo.Channel]*bool{
		vo.ChannelEmail: u.EmailEnabled,
		vo.ChannelPush:  u.PushEnabled,
		vo.ChannelSMS:   u.SMSEnabled,
		vo.ChannelInApp: u.InAppEnabled,
	}
}

func (u PreferenceUpdate) categoryFields() map[vo.Category]*bool {
	return map[vo.Category]*bool{
		vo.CategoryPlanning:     u.PlanningEnabled,
		vo.CategoryBooking:      u.BookingEnabled,
		vo.CategorySocial:       u.SocialEnabled,
		vo.CategoryPerformance:  u.PerformanceEnabled,
		vo.CategorySystem:       u.SystemEnabled,
		vo.CategoryCommercial:   u.CommercialEnabled,
		vo.CategoryPersonalized: u.PersonalizedEnabled,
		vo.CategoryUrgent:       u.UrgentEnabled,
	}
}

func (u PreferenceUpdate) fields() []*bool {
	out := make([]*bool, 0, 12)
	for _, v := range u.channelFields() {
		out = append(out, v)
	}
	for _, v := range u.categoryFields() {
		out = append(out, v)
	}
	return out
}

// DefaultPreference returns the settings a user has before saving any:
// everything on except commercial messages.
func DefaultPreference(userID uint) *Preference {
	now := biztime.NowUTC()
	p := &Preference{
		userID:     userID,
		channels:   make(map[vo.Channel]bool, 4),
		categories: make(map[vo.Category]bool, 8),
		createdAt:  now,
		updatedAt:  now,
	}
	for _, c := range []vo.Channel{vo.ChannelEmail, vo.ChannelPush, vo.ChannelSMS, vo.ChannelInApp} {
		p.channels[c] = true
	}
	for _, info := range vo.CategoryInfos() {
		p.categories[info.ID] = true
	}
	p.categories[vo.CategoryCommercial] = false
	return p
}

// NewPreference creates the default preference for a user about to be stored.
func NewPreference(userID uint) (*Preference, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return DefaultPreference(userID), nil
}

// ReconstructPreference rebuilds a preference from storage.
func ReconstructPreference(
	id, userID uint,
	channels map[vo.Channel]bool,
	categories map[vo.Category]bool,
	createdAt, updatedAt time.Time,
) (*Preference, error) {
	if id == 0 {
		return nil, fmt.Errorf("preference ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	p := DefaultPreference(userID)
	p.id = id
	for c, enabled := range channels {
		if !c.IsValid() {
			return nil, fmt.Errorf("invalid channel: %s", c)
		}
		p.channels[c] = enabled
	}
	for c, enabled := range categories {
		if !c.IsValid() {
			return nil, fmt.Errorf("invalid category: %s", c)
		}
		p.categories[c] = enabled
	}
	p.createdAt = createdAt
	p.updatedAt = updatedAt
	return p, nil
}

func (p *Preference) ID() uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.id
}

func (p *Preference) UserID() uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.userID
}

func (p *Preference) CreatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.createdAt
}

func (p *Preference) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

func (p *Preference) SetID(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != 0 {
		return fmt.Errorf("preference ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("preference ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Preference) ChannelEnabled(c vo.Channel) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.channels[c]
}

// Channels returns a copy of the channel switches.
func (p *Preference) Channels() map[vo.Channel]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[vo.Channel]bool, len(p.channels))
	for c, v := range p.channels {
		out[c] = v
	}
	return out
}

// Categories returns a copy of the category switches.
func (p *Preference) Categories() map[vo.Category]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[vo.Category]bool, len(p.categories))
	for c, v := range p.categories {
		out[c] = v
	}
	return out
}

// CategoryEnabled reports the stored switch. The urgent switch is stored
// like the others; ShouldDeliver does not consult it.
func (p *Preference) CategoryEnabled(c vo.Category) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.categories[c]
}

// Apply merges a partial update and reports whether anything changed.
func (p *Preference) Apply(u PreferenceUpdate) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	changed := false
	for c, v := range u.channelFields() {
		if v != nil && p.channels[c] != *v {
			p.channels[c] = *v
			changed = true
		}
	}
	for c, v := range u.categoryFields() {
		if v != nil && p.categories[c] != *v {
			p.categories[c] = *v
			changed = true
		}
	}
	if changed {
		p.updatedAt = biztime.NowUTC()
	}
	return changed
}
