package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Notification list paging
	DefaultListLimit = 20
	MaxListLimit     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// User roles
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RoleService = "service"

	// Database table names
	TableNotifications           = "notifications"
	TableNotificationPreferences = "notification_preferences"
	TableUsers                   = "users"

	// Redis keys
	RedisKeyUnreadCountPrefix = "fiwe:notifications:unread:"
	RedisKeyRateLimitPrefix   = "fiwe:ratelimit:"
	RedisChannelNotifications = "fiwe:notifications:events"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
