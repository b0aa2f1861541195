package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/pipeline"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

//go:generate mockgen -source=pipeline_sync.go -destination=mocks/pipeline_sync.go -package=mocks

// Runner executes one full pipeline run.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Summary, error)
}

// PipelineSyncConfig holds the schedule of the periodic pipeline run.
type PipelineSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PipelineSyncService runs the pipeline on a cron schedule and on demand.
type PipelineSyncService struct {
	scheduler           *gocron.Scheduler
	config              PipelineSyncConfig
	runner              Runner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastError           string
	baseCtx             context.Context
}

func NewPipelineSyncService(runner Runner, appConfig *config.Config) *PipelineSyncService {
	syncConfig := PipelineSyncConfig{
		CronSchedule: appConfig.PipelineSync.CronSchedule,
		SyncEnabled:  appConfig.PipelineSync.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Pipeline scheduler configuration loaded")

	return &PipelineSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		runner:    runner,
		baseCtx:   context.Background(),
	}
}

// Start schedules the periodic run. It stops when ctx is cancelled.
func (s *PipelineSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		log.L.Info("Scheduled pipeline run disabled by configuration")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Starting pipeline scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		_, _ = s.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling pipeline run: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Stopping pipeline scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow runs the pipeline synchronously unless a scheduled or manual run is
// already in progress.
func (s *PipelineSyncService) RunNow(ctx context.Context) (*pipeline.Summary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Pipeline run already in progress, skipping")
		return nil, pipeline.ErrRunInProgress
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary, err := s.runner.Run(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false
	if errors.Is(err, pipeline.ErrRunInProgress) {
		return summary, err
	}
	s.lastSyncCompletedAt = time.Now()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	if summary != nil {
		s.lastRunID = summary.RunID
	}

	return summary, err
}

// TriggerManualSync starts a run in the background. It reports false when a
// run is already in progress.
func (s *PipelineSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("Pipeline run already in progress, ignoring manual request")
		return false
	}
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	log.L.Info("Starting manual pipeline run")
	go func() {
		_, _ = s.RunNow(ctx)
	}()

	return true
}

// GetStatus returns the current state of the scheduled run.
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_run_id":            s.lastRunID,
		"last_error":             s.lastError,
	}
}
