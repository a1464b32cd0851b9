package notification

import (
	"github.com/edofi/fiwe/internal/domain/notification/templates"
	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

// ShouldDeliver decides whether a notification of type t is created for a
// user with the given preference. Urgent types always pass; a nil preference
// means the user has not saved any and the defaults apply.
func ShouldDeliver(pref *Preference, t vo.NotificationType) bool {
	category, ok := templates.CategoryOf(t)
	if !ok {
		return false
	}
	if category.IsUrgent() {
		return true
	}
	if pref == nil {
		pref = DefaultPreference(0)
	}
	return pref.CategoryEnabled(category)
}

// ChannelsFor lists the delivery channels to use for a delivered
// notification. Only channels with a transport are returned.
func ChannelsFor(pref *Preference, t vo.NotificationType) []vo.Channel {
	if !ShouldDeliver(pref, t) {
		return nil
	}
	if pref == nil {
		pref = DefaultPreference(0)
	}

	var channels []vo.Channel
	if pref.ChannelEnabled(vo.ChannelInApp) {
		channels = append(channels, vo.ChannelInApp)
	}
	if pref.ChannelEnabled(vo.ChannelEmail) {
		channels = append(channels, vo.ChannelEmail)
	}
	return channels
}
