package notify

import "time"

// Notification is one alert addressed to a user.
type Notification struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"user_id"`
	Type        string         `json:"type"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	MessageHTML string         `json:"message_html,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	Status      string         `json:"status"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Notification statuses.
const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusRead    = "READ"
	StatusFailed  = "FAILED"
)

// IsRead reports whether the notification has been read.
func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}

// ListFilter narrows a notification list. Zero values mean "no filter";
// Limit 0 lets the server apply its default page size.
type ListFilter struct {
	Type     string
	Priority string
	Status   string
	Read     *bool
	Limit    int
	Offset   int
}

// ListResult is one page of notifications, most recent first.
type ListResult struct {
	Items  []Notification `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// CreateRequest creates a notification from explicit content.
type CreateRequest struct {
	UserID   uint           `json:"user_id"`
	Type     string         `json:"type"`
	Priority string         `json:"priority,omitempty"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
}

// TemplateRequest creates a notification from the type's template.
type TemplateRequest struct {
	UserID    uint           `json:"user_id"`
	Type      string         `json:"type"`
	Variables map[string]any `json:"variables,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Preference keys accepted by Center.TogglePreference.
const (
	PrefEmail        = "email_enabled"
	PrefPush         = "push_enabled"
	PrefSMS          = "sms_enabled"
	PrefInApp        = "in_app_enabled"
	PrefPlanning     = "planning_enabled"
	PrefBooking      = "booking_enabled"
	PrefSocial       = "social_enabled"
	PrefPerformance  = "performance_enabled"
	PrefSystem       = "system_enabled"
	PrefCommercial   = "commercial_enabled"
	PrefPersonalized = "personalized_enabled"
	PrefUrgent       = "urgent_enabled"
)

// Preferences holds a user's channel and category switches.
type Preferences struct {
	UserID              uint      `json:"user_id"`
	EmailEnabled        bool      `json:"email_enabled"`
	PushEnabled         bool      `json:"push_enabled"`
	SMSEnabled          bool      `json:"sms_enabled"`
	InAppEnabled        bool      `json:"in_app_enabled"`
	PlanningEnabled     bool      `json:"planning_enabled"`
	BookingEnabled      bool      `json:"booking_enabled"`
	SocialEnabled       bool      `json:"social_enabled"`
	PerformanceEnabled  bool      `json:"performance_enabled"`
	SystemEnabled       bool      `json:"system_enabled"`
	CommercialEnabled   bool      `json:"commercial_enabled"`
	PersonalizedEnabled bool      `json:"personalized_enabled"`
	UrgentEnabled       bool      `json:"urgent_enabled"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// field returns the switch stored under key, or nil for an unknown key.
func (p *Preferences) field(key string) *bool {
	switch key {
	case PrefEmail:
		return &p.EmailEnabled
	case PrefPush:
		return &p.PushEnabled
	case PrefSMS:
		return &p.SMSEnabled
	case PrefInApp:
		return &p.InAppEnabled
	case PrefPlanning:
		return &p.PlanningEnabled
	case PrefBooking:
		return &p.BookingEnabled
	case PrefSocial:
		return &p.SocialEnabled
	case PrefPerformance:
		return &p.PerformanceEnabled
	case PrefSystem:
		return &p.SystemEnabled
	case PrefCommercial:
		return &p.CommercialEnabled
	case PrefPersonalized:
		return &p.PersonalizedEnabled
	case PrefUrgent:
		return &p.UrgentEnabled
	default:
		return nil
	}
}

// PreferenceUpdate is a partial update; nil fields are left untouched.
type PreferenceUpdate struct {
	EmailEnabled        *bool `json:"email_enabled,omitempty"`
	PushEnabled         *bool `json:"push_enabled,omitempty"`
	SMSEnabled          *bool `json:"sms_enabled,omitempty"`
	InAppEnabled        *bool `json:"in_app_enabled,omitempty"`
	PlanningEnabled     *bool `json:"planning_enabled,omitempty"`
	BookingEnabled      *bool `json:"booking_enabled,omitempty"`
	SocialEnabled       *bool `json:"social_enabled,omitempty"`
	PerformanceEnabled  *bool `json:"performance_enabled,omitempty"`
	SystemEnabled       *bool `json:"system_enabled,omitempty"`
	CommercialEnabled   *bool `json:"commercial_enabled,omitempty"`
	PersonalizedEnabled *bool `json:"personalized_enabled,omitempty"`
	UrgentEnabled       *bool `json:"urgent_enabled,omitempty"`
}

// singlePreference builds an update touching only key.
func singlePreference(key string, value bool) PreferenceUpdate {
	var u PreferenceUpdate
	v := &value
	switch key {
	case PrefEmail:
		u.EmailEnabled = v
	case PrefPush:
		u.PushEnabled = v
	case PrefSMS:
		u.SMSEnabled = v
	case PrefInApp:
		u.InAppEnabled = v
	case PrefPlanning:
		u.PlanningEnabled = v
	case PrefBooking:
		u.BookingEnabled = v
	case PrefSocial:
		u.SocialEnabled = v
	case PrefPerformance:
		u.PerformanceEnabled = v
	case PrefSystem:
		u.SystemEnabled = v
	case PrefCommercial:
		u.CommercialEnabled = v
	case PrefPersonalized:
		u.PersonalizedEnabled = v
	case PrefUrgent:
		u.UrgentEnabled = v
	}
	return u
}

// Category groups notification types for display.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Description   string   `json:"description"`
	PreferenceKey string   `json:"preference_key"`
	Types         []string `json:"types"`
}

// apiResponse represents the standard API response structure.
type apiResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
