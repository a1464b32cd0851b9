// Package scheduler runs the notification background jobs on gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/edofi/fiwe/internal/shared/biztime"
	"github.com/edofi/fiwe/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// Cron expressions are evaluated in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// ========================================
// Dispatch Job (interval, start immediately)
// ========================================

// RegisterDispatchJob delivers pending notifications every interval. A run
// keeps taking batches until one comes back short.
func (m *SchedulerManager) RegisterDispatchJob(dispatchJob BatchJob, interval time.Duration, batchSize int) error {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.processPendingNotifications(ctx, dispatchJob, batchSize)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notification", "dispatch"),
		gocron.WithName("notification-dispatch"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered notification dispatch job", "interval", interval.String())
	return nil
}

// maxDispatchBatchesPerRun bounds one run so a backlog cannot starve
// shutdown.
const maxDispatchBatchesPerRun = 20

func (m *SchedulerManager) processPendingNotifications(ctx context.Context, dispatchJob BatchJob, batchSize int) {
	m.logger.Debugw("processing pending notifications started")

	startTime := biztime.NowUTC()
	total := 0

	for i := 0; i < maxDispatchBatchesPerRun; i++ {
		processed, err := dispatchJob.Execute(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.Errorw("failed to dispatch pending notifications",
				"error", err,
				"duration", time.Since(startTime),
			)
			return
		}
		total += processed
		if batchSize <= 0 || processed < batchSize {
			break
		}
	}

	if total > 0 {
		m.logger.Infow("pending notifications dispatched",
			"count", total,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("no pending notifications to dispatch",
			"duration", time.Since(startTime),
		)
	}
}

// ========================================
// Cleanup Job (cron-based)
// ========================================

// RegisterCleanupJob purges old read notifications on the given cron
// schedule (default 03:00 business timezone).
func (m *SchedulerManager) RegisterCleanupJob(cleanupJob BatchJob, cronExpr string) error {
	if cronExpr == "" {
		cronExpr = "0 3 * * *"
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.executeCleanup(ctx, cleanupJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("notification", "cleanup"),
		gocron.WithName("notification-cleanup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered notification cleanup job", "cron", cronExpr)
	return nil
}

func (m *SchedulerManager) executeCleanup(ctx context.Context, cleanupJob BatchJob) {
	m.logger.Debugw("executing notification cleanup")

	startTime := biztime.NowUTC()
	deleted, err := cleanupJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("notification cleanup failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("notification cleanup completed successfully",
		"deleted", deleted,
		"duration", time.Since(startTime),
	)
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
