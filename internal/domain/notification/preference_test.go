package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

func boolPtr(b bool) *bool { return &b }

func TestDefaultPreference(t *testing.T) {
	p := DefaultPreference(42)

	assert.Equal(t, uint(42), p.UserID())
	for _, c := range []vo.Channel{vo.ChannelEmail, vo.ChannelPush, vo.ChannelSMS, vo.ChannelInApp} {
		assert.True(t, p.ChannelEnabled(c), c)
	}
	for _, info := range vo.CategoryInfos() {
		want := info.ID != vo.CategoryCommercial
		assert.Equal(t, want, p.CategoryEnabled(info.ID), info.ID)
	}
}

func TestNewPreference_RequiresUser(t *testing.T) {
	_, err := NewPreference(0)
	assert.EqualError(t, err, "user ID is required")
}

func TestPreference_Apply(t *testing.T) {
	p := DefaultPreference(1)
	before := p.UpdatedAt()
	time.Sleep(2 * time.Millisecond)

	changed := p.Apply(PreferenceUpdate{
		EmailEnabled:      boolPtr(false),
		CommercialEnabled: boolPtr(true),
		SocialEnabled:     boolPtr(true), // already true
	})

	assert.True(t, changed)
	assert.False(t, p.ChannelEnabled(vo.ChannelEmail))
	assert.True(t, p.ChannelEnabled(vo.ChannelPush), "untouched field keeps its value")
	assert.True(t, p.CategoryEnabled(vo.CategoryCommercial))
	assert.True(t, p.UpdatedAt().After(before))

	updated := p.UpdatedAt()
	assert.False(t, p.Apply(PreferenceUpdate{EmailEnabled: boolPtr(false)}))
	assert.Equal(t, updated, p.UpdatedAt(), "no-op update keeps updated_at")
}

func TestPreferenceUpdate_IsEmpty(t *testing.T) {
	assert.True(t, PreferenceUpdate{}.IsEmpty())
	assert.False(t, PreferenceUpdate{UrgentEnabled: boolPtr(false)}.IsEmpty())
}

func TestReconstructPreference(t *testing.T) {
	now := time.Now().UTC()
	p, err := ReconstructPreference(3, 42,
		map[vo.Channel]bool{vo.ChannelSMS: false},
		map[vo.Category]bool{vo.CategoryBooking: false, vo.CategoryUrgent: false},
		now, now)

	require.NoError(t, err)
	assert.Equal(t, uint(3), p.ID())
	assert.False(t, p.ChannelEnabled(vo.ChannelSMS))
	assert.False(t, p.CategoryEnabled(vo.CategoryBooking))
	assert.False(t, p.CategoryEnabled(vo.CategoryUrgent))

	_, err = ReconstructPreference(3, 42, map[vo.Channel]bool{"fax": true}, nil, now, now)
	assert.EqualError(t, err, "invalid channel: fax")
}
