package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/edofi/fiwe/internal/infrastructure/config"
	"github.com/edofi/fiwe/internal/infrastructure/database"
	"github.com/edofi/fiwe/internal/infrastructure/migration"
	httpRouter "github.com/edofi/fiwe/internal/interfaces/http"
	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/logger"
)

const shutdownTimeout = 30 * time.Second

var (
	env               string
	autoMigrate       bool
	migrationStrategy string
	withScheduler     bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Fiwe notification HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().StringVar(&migrationStrategy, "strategy", migration.StrategyGoose, "Migration strategy used with --auto-migrate (goose, golang-migrate, gorm-auto-migrate)")
	cmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "Also run the dispatch and cleanup jobs in this process (overrides scheduler.enabled)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server",
		"environment", env,
		"auto_migrate", autoMigrate,
		"timezone", cfg.Server.Timezone)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := runAutoMigrate(cfg, log); err != nil {
			return err
		}
	}

	router, err := httpRouter.NewRouter(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	defer router.Shutdown()
	router.SetupRoutes()

	if withScheduler || cfg.Scheduler.Enabled {
		if err := router.StartScheduler(); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:        cfg.Server.GetAddr(),
		Handler:     router.GetEngine(),
		ReadTimeout: 15 * time.Second,
		// no write timeout: SSE and WebSocket streams stay open
		IdleTimeout: 60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("server starting", "address", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return router.RunRealtimeRelay(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorw("server forced to shutdown", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func runAutoMigrate(cfg *config.Config, log logger.Interface) error {
	if env == "production" {
		log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
	}

	manager, err := migration.NewManager(migrationStrategy, &cfg.Database)
	if err != nil {
		return err
	}

	log.Infow("running auto-migration", "strategy", manager.GetStrategy().GetName())
	if err := manager.Migrate(database.Get()); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	log.Infow("auto-migration completed successfully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
