package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edofi/fiwe/internal/infrastructure/permission"
	"github.com/edofi/fiwe/internal/interfaces/http/handlers"
	"github.com/edofi/fiwe/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler  *handlers.NotificationHandler
	StreamHandler        *handlers.StreamHandler
	EventHandler         *handlers.BusinessEventHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimitMiddleware  *middleware.RateLimitMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	notifications.Use(config.RateLimitMiddleware.Limit())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		notifications.GET("/categories", config.NotificationHandler.ListCategories)

		// Per-user collection
		user := notifications.Group("/user/:id")
		{
			user.GET("", config.NotificationHandler.ListNotifications)
			user.GET("/unread-count", config.NotificationHandler.GetUnreadCount)
			user.PUT("/mark-all-read", config.NotificationHandler.MarkAllAsRead)
			user.GET("/preferences", config.NotificationHandler.GetPreferences)
			user.PUT("/preferences", config.NotificationHandler.UpdatePreferences)
			user.GET("/stream", config.StreamHandler.StreamSSE)
			user.GET("/ws", config.StreamHandler.StreamWebSocket)
		}

		notifications.POST("",
			config.PermissionMiddleware.RequirePermission(permission.ResourceNotification, permission.ActionCreate),
			config.NotificationHandler.CreateNotification)
		notifications.POST("/from-template",
			config.PermissionMiddleware.RequirePermission(permission.ResourceNotification, permission.ActionCreate),
			config.NotificationHandler.CreateFromTemplate)

		// Generic parameterized routes (must come LAST)
		notifications.PUT("/:id/read", config.NotificationHandler.MarkAsRead)
		notifications.DELETE("/:id", config.NotificationHandler.DeleteNotification)
	}

	events := engine.Group("/notification-events")
	events.Use(config.AuthMiddleware.RequireAuth())
	events.Use(config.RateLimitMiddleware.Limit())
	{
		events.POST("",
			config.PermissionMiddleware.RequirePermission(permission.ResourceEvent, permission.ActionPublish),
			config.EventHandler.PublishEvent)
	}
}
