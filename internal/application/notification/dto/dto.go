package dto

import (
	"time"
)

// Actor is the authenticated caller on whose behalf a use case runs.
type Actor struct {
	UserID       uint
	Role         string
	CanManageAny bool
}

// CanAccess reports whether the actor may act on data owned by ownerID.
func (a Actor) CanAccess(ownerID uint) bool {
	return a.CanManageAny || a.UserID == ownerID
}

type ListNotificationsRequest struct {
	UserID   uint
	Type     string `form:"type" binding:"omitempty,notification_type"`
	Priority string `form:"priority" binding:"omitempty,notification_priority"`
	Status   string `form:"status" binding:"omitempty,notification_status"`
	Read     *bool  `form:"-"`
	Limit    int    `form:"-"`
	Offset   int    `form:"-"`
}

type CreateNotificationRequest struct {
	UserID   uint           `json:"user_id" binding:"required"`
	Type     string         `json:"type" binding:"required,notification_type"`
	Priority string         `json:"priority" binding:"omitempty,notification_priority"`
	Title    string         `json:"title" binding:"required,max=200"`
	Message  string         `json:"message" binding:"required,max=5000"`
	Data     map[string]any `json:"data"`
}

type CreateFromTemplateRequest struct {
	UserID    uint           `json:"user_id" binding:"required"`
	Type      string         `json:"type" binding:"required,notification_type"`
	Variables map[string]any `json:"variables"`
	Data      map[string]any `json:"data"`
}

// UpdatePreferencesRequest is a partial update: omitted fields keep their value.
type UpdatePreferencesRequest struct {
	EmailEnabled *bool `json:"email_enabled"`
	PushEnabled  *bool `json:"push_enabled"`
	SMSEnabled   *bool `json:"sms_enabled"`
	InAppEnabled *bool `json:"in_app_enabled"`

	PlanningEnabled     *bool `json:"planning_enabled"`
	BookingEnabled      *bool `json:"booking_enabled"`
	SocialEnabled       *bool `json:"social_enabled"`
	PerformanceEnabled  *bool `json:"performance_enabled"`
	SystemEnabled       *bool `json:"system_enabled"`
	CommercialEnabled   *bool `json:"commercial_enabled"`
	PersonalizedEnabled *bool `json:"personalized_enabled"`
	UrgentEnabled       *bool `json:"urgent_enabled"`
}

// BusinessEventRequest feeds an application event to the triggers.
type BusinessEventRequest struct {
	Type        string         `json:"type" binding:"required"`
	AggregateID string         `json:"aggregate_id"`
	Payload     map[string]any `json:"payload" binding:"required"`
}

type NotificationResponse struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"user_id"`
	Type        string         `json:"type"`
	Category    string         `json:"category"`
	Priority    string         `json:"priority"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	MessageHTML string         `json:"message_html"`
	Data        map[string]any `json:"data"`
	Status      string         `json:"status"`
	ReadAt      *time.Time     `json:"read_at"`
	SentAt      *time.Time     `json:"sent_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type PreferenceResponse struct {
	UserID       uint `json:"user_id"`
	EmailEnabled bool `json:"email_enabled"`
	PushEnabled  bool `json:"push_enabled"`
	SMSEnabled   bool `json:"sms_enabled"`
	InAppEnabled bool `json:"in_app_enabled"`

	PlanningEnabled     bool `json:"planning_enabled"`
	BookingEnabled      bool `json:"booking_enabled"`
	SocialEnabled       bool `json:"social_enabled"`
	PerformanceEnabled  bool `json:"performance_enabled"`
	SystemEnabled       bool `json:"system_enabled"`
	CommercialEnabled   bool `json:"commercial_enabled"`
	PersonalizedEnabled bool `json:"personalized_enabled"`
	UrgentEnabled       bool `json:"urgent_enabled"`

	UpdatedAt time.Time `json:"updated_at"`
}

type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Icon          string   `json:"icon"`
	Description   string   `json:"description"`
	PreferenceKey string   `json:"preference_key"`
	Types         []string `json:"types"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllAsReadResponse struct {
	Updated int64 `json:"updated"`
}

type ListResponse struct {
	Items  interface{} `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// BatchResult summarises one run of a background job.
type BatchResult struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// RealtimeEvent is the payload pushed to a user's open streams.
type RealtimeEvent struct {
	Type           string                `json:"type"`
	UserID         uint                  `json:"user_id"`
	NotificationID uint                  `json:"notification_id,omitempty"`
	Notification   *NotificationResponse `json:"notification,omitempty"`
	UnreadCount    *int64                `json:"unread_count,omitempty"`
	OccurredAt     time.Time             `json:"occurred_at"`
}
