package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationApp "github.com/edofi/fiwe/internal/application/notification"
	"github.com/edofi/fiwe/internal/application/notification/triggers"
	"github.com/edofi/fiwe/internal/application/notification/usecases"
	"github.com/edofi/fiwe/internal/domain/notification"
	"github.com/edofi/fiwe/internal/domain/shared/events"
	"github.com/edofi/fiwe/internal/infrastructure/auth"
	"github.com/edofi/fiwe/internal/infrastructure/config"
	"github.com/edofi/fiwe/internal/infrastructure/permission"
	"github.com/edofi/fiwe/internal/infrastructure/pubsub"
	"github.com/edofi/fiwe/internal/infrastructure/ratelimit"
	"github.com/edofi/fiwe/internal/infrastructure/realtime"
	"github.com/edofi/fiwe/internal/infrastructure/scheduler"
	"github.com/edofi/fiwe/internal/interfaces/http/handlers"
	"github.com/edofi/fiwe/internal/interfaces/http/middleware"
	"github.com/edofi/fiwe/internal/shared/logger"
	"github.com/edofi/fiwe/internal/shared/services/markdown"
)

const (
	eventBufferSize    = 256
	realtimeBufferSize = 32
)

// Container holds the infrastructure components, the notification service,
// handlers and background services. It wires everything together and
// provides Shutdown for graceful termination.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	// Repositories
	repos *repositories

	// Auth & permissions
	jwtSvc   *auth.JWTService
	enforcer *permission.Enforcer
	limiter  ratelimit.RateLimiter

	// Notification service and background use cases
	markdownSvc         markdown.MarkdownService
	emailSender         usecases.EmailSender
	notificationService *notificationApp.ServiceDDD
	dispatchPendingUC   *usecases.DispatchPendingUseCase
	cleanupUC           *usecases.CleanupNotificationsUseCase

	// Business events feeding the triggers
	eventDispatcher *events.InMemoryEventDispatcher
	notifier        *triggers.Notifier

	// Realtime fan-out. bus is nil when Redis is disabled and the hub
	// receives events directly.
	hub *realtime.Hub
	bus *pubsub.RedisNotificationBus

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware

	schedulerManager *scheduler.SchedulerManager
	shutdownOnce     sync.Once
}

type repositories struct {
	notificationRepo notification.NotificationRepository
	preferenceRepo   notification.PreferenceRepository
	recipients       notification.RecipientDirectory
}

type allHandlers struct {
	notificationHandler *handlers.NotificationHandler
	streamHandler       *handlers.StreamHandler
	eventHandler        *handlers.BusinessEventHandler
	healthHandler       *handlers.HealthHandler
}

// NewContainer creates a Container with all dependencies wired together.
// Redis is connected only when enabled in the configuration.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, repositories, auth, rate limiting
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Notification service, triggers and background jobs
	if err := c.initNotification(); err != nil {
		c.closeRedis()
		return nil, err
	}

	// Section 3: Handlers and middlewares
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine routes are mounted on.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// NotificationService exposes the wired service for commands that bypass HTTP.
func (c *Container) NotificationService() *notificationApp.ServiceDDD {
	return c.notificationService
}

// StartScheduler registers the dispatch and cleanup jobs and starts them.
func (c *Container) StartScheduler() error {
	sm, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	ncfg := c.cfg.Notification
	if err := sm.RegisterDispatchJob(c.dispatchPendingUC, ncfg.DispatchInterval(), ncfg.DispatchBatchSize); err != nil {
		return fmt.Errorf("failed to register dispatch job: %w", err)
	}
	if err := sm.RegisterCleanupJob(c.cleanupUC, ncfg.CleanupCron); err != nil {
		return fmt.Errorf("failed to register cleanup job: %w", err)
	}

	sm.Start()
	c.schedulerManager = sm
	return nil
}

// RunRealtimeRelay forwards events published by any instance to the local
// hub until ctx is cancelled. Without Redis there is nothing to relay and it
// simply waits for ctx.
func (c *Container) RunRealtimeRelay(ctx context.Context) error {
	if c.bus == nil {
		<-ctx.Done()
		return nil
	}
	err := c.bus.Subscribe(ctx, c.hub.Broadcast)
	if err != nil && ctx.Err() != nil {
		c.log.Infow("realtime relay stopped", "reason", "context canceled")
		return nil
	}
	return err
}

// Shutdown stops background services. Safe to call more than once.
func (c *Container) Shutdown() {
	c.shutdownOnce.Do(func() {
		if c.schedulerManager != nil {
			if err := c.schedulerManager.Stop(); err != nil {
				c.log.Errorw("failed to stop scheduler", "error", err)
			}
		}

		if c.eventDispatcher != nil {
			if err := c.eventDispatcher.Stop(); err != nil {
				c.log.Errorw("failed to stop event dispatcher", "error", err)
			}
		}

		c.closeRedis()
	})
}

func (c *Container) closeRedis() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
}
