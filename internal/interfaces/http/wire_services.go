package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	notificationApp "github.com/edofi/fiwe/internal/application/notification"
	"github.com/edofi/fiwe/internal/application/notification/dto"
	"github.com/edofi/fiwe/internal/application/notification/triggers"
	"github.com/edofi/fiwe/internal/application/notification/usecases"
	"github.com/edofi/fiwe/internal/domain/notification/templates"
	"github.com/edofi/fiwe/internal/domain/shared/events"
	"github.com/edofi/fiwe/internal/infrastructure/auth"
	"github.com/edofi/fiwe/internal/infrastructure/cache"
	"github.com/edofi/fiwe/internal/infrastructure/config"
	"github.com/edofi/fiwe/internal/infrastructure/email"
	"github.com/edofi/fiwe/internal/infrastructure/permission"
	"github.com/edofi/fiwe/internal/infrastructure/pubsub"
	"github.com/edofi/fiwe/internal/infrastructure/ratelimit"
	"github.com/edofi/fiwe/internal/infrastructure/realtime"
	"github.com/edofi/fiwe/internal/infrastructure/repository"
	"github.com/edofi/fiwe/internal/interfaces/http/handlers"
	"github.com/edofi/fiwe/internal/interfaces/http/middleware"
	"github.com/edofi/fiwe/internal/shared/logger"
	"github.com/edofi/fiwe/internal/shared/services/markdown"
)

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Auth
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
	} else {
		c.log.Infow("redis disabled, realtime events and rate limits stay in-process")
	}

	c.repos = &repositories{
		notificationRepo: repository.NewNotificationRepository(c.db),
		preferenceRepo:   repository.NewPreferenceRepository(c.db),
		recipients:       repository.NewRecipientDirectory(c.db),
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		c.closeRedis()
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitNotificationPermissions(enforcer); err != nil {
		c.closeRedis()
		return fmt.Errorf("failed to install notification permissions: %w", err)
	}
	c.enforcer = enforcer

	rl := cfg.Notification.RateLimit
	if c.redis != nil {
		c.limiter = ratelimit.NewRedisRateLimiter(c.redis, rl.Requests, rl.Window())
	} else {
		c.limiter = ratelimit.NewMemoryRateLimiter(rl.Requests, rl.Window())
	}

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Notification service, triggers, background jobs
// ============================================================

func (c *Container) initNotification() error {
	cfg := c.cfg
	ncfg := cfg.Notification

	if ncfg.TemplateOverridesPath != "" {
		n, err := templates.LoadOverrides(ncfg.TemplateOverridesPath)
		if err != nil {
			return fmt.Errorf("failed to load template overrides: %w", err)
		}
		c.log.Infow("template overrides loaded", "path", ncfg.TemplateOverridesPath, "count", n)
	}

	c.markdownSvc = markdown.NewMarkdownService(ncfg.MarkdownCacheSize)

	if cfg.Email.Enabled {
		c.emailSender = email.NewSMTPEmailService(&cfg.Email, email.NewSMTPTransport(&cfg.Email), c.log.Named("email"))
	} else {
		c.log.Infow("email channel disabled")
	}

	c.hub = realtime.NewHub(realtimeBufferSize, c.log.Named("realtime"))

	deps := notificationApp.Dependencies{
		NotificationRepo: c.repos.notificationRepo,
		PreferenceRepo:   c.repos.preferenceRepo,
		Recipients:       c.repos.recipients,
		MarkdownService:  c.markdownSvc,
		Publisher:        c.hub,
	}
	if c.emailSender != nil {
		deps.EmailSender = c.emailSender
	}
	if c.redis != nil {
		deps.Cache = cache.NewRedisUnreadCountCache(c.redis, ncfg.UnreadCacheTTL(), c.log)
		c.bus = pubsub.NewRedisNotificationBus(c.redis, c.log.Named("pubsub"))
		deps.Publisher = c.bus
	}

	c.notificationService = notificationApp.NewServiceDDD(deps, c.log)

	c.dispatchPendingUC = usecases.NewDispatchPendingUseCase(
		c.repos.notificationRepo,
		c.repos.preferenceRepo,
		c.repos.recipients,
		deps.EmailSender,
		c.markdownSvc,
		ncfg.DispatchBatchSize,
		c.log,
	)
	c.cleanupUC = usecases.NewCleanupNotificationsUseCase(
		c.repos.notificationRepo,
		ncfg.Retention(),
		ncfg.DispatchBatchSize,
		c.log,
	)

	c.eventDispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, c.log.Named("events"))
	c.notifier = triggers.NewNotifier(&templateCreatorAdapter{service: c.notificationService}, c.log.Named("triggers"))
	if err := c.notifier.Register(c.eventDispatcher); err != nil {
		return fmt.Errorf("failed to register notification triggers: %w", err)
	}
	if err := c.eventDispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	c.log.Infow("event dispatcher started", "event_types", len(triggers.EventTypes()))

	return nil
}

// templateCreatorAdapter adapts the service to triggers.TemplateCreator.
type templateCreatorAdapter struct {
	service *notificationApp.ServiceDDD
}

func (a *templateCreatorAdapter) Execute(ctx context.Context, req dto.CreateFromTemplateRequest) (*dto.NotificationResponse, error) {
	return a.service.CreateFromTemplate(ctx, req)
}

// ============================================================
// Section 3: Handlers and Middlewares
// ============================================================

func (c *Container) initHandlers() {
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(c.limiter, log)

	c.hdlrs = &allHandlers{
		notificationHandler: handlers.NewNotificationHandler(c.notificationService, c.enforcer, log),
		streamHandler:       handlers.NewStreamHandler(c.hub, c.enforcer, c.cfg.Server.AllowedOrigins, log),
		eventHandler:        handlers.NewBusinessEventHandler(c.eventDispatcher, log),
		healthHandler:       handlers.NewHealthHandler(c.healthChecks()),
	}
}

func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}
