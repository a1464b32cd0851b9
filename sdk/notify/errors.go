package notify

import (
	"errors"
	"fmt"
)

// Fixed messages reported to users, one per operation.
const (
	msgList        = "Unable to load notifications"
	msgCreate      = "Unable to create the notification"
	msgMarkRead    = "Unable to mark the notification as read"
	msgMarkAllRead = "Unable to mark notifications as read"
	msgDelete      = "Unable to delete the notification"
	msgUnread      = "Unable to load the unread count"
	msgPreferences = "Unable to load notification preferences"
	msgUpdatePrefs = "Unable to update notification preferences"
	msgCategories  = "Unable to load notification categories"
	msgPublish     = "Unable to publish the event"
)

// APIError is returned for every failed call: transport failures carry
// StatusCode 0, non-2xx responses carry the HTTP status. Message is the
// fixed text for the operation; Detail holds what the server said, if
// anything.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("%s: %s (status %d: %s)", e.Op, e.Message, e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError for a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// IsForbidden reports whether err is an APIError for a 403 response.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 403
}
