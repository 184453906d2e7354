package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/ddepe/sales-sync-api/internal/config"
	"github.com/ddepe/sales-sync-api/internal/usecases/updating"
	"github.com/ddepe/sales-sync-api/pkg/utils"
)

// SalesSyncConfig holds the scheduling knobs of the sales history sync.
type SalesSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SalesSyncService schedules and runs the incremental sales history update.
type SalesSyncService struct {
	scheduler           *gocron.Scheduler
	config              SalesSyncConfig
	updater             *updating.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *updating.Result
}

func NewSalesSyncService(updater *updating.Service, appConfig *config.Config) *SalesSyncService {
	syncConfig := SalesSyncConfig{
		CronSchedule: appConfig.SalesSync.CronSchedule,
		SyncEnabled:  appConfig.SalesSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Sales sync scheduler configuration loaded")

	return &SalesSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		updater:   updater,
	}
}

// Start schedules the sync job and stops the scheduler when the application
// context is cancelled.
func (s *SalesSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sales history sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting sales history sync scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling sales history sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping sales history sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// runSync runs one incremental update. Overlapping runs are skipped so the
// read-then-append sequence is never executed concurrently in this process.
func (s *SalesSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sales history sync already running, skipping")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, err := utils.GenerateID()
	if err != nil {
		runID = "unknown"
	}

	startTime := time.Now()

	logger := logrus.WithField("run_id", runID)
	logger.Info("Starting sales history sync")

	result, err := s.updater.UpdateHistory(ctx)
	if err != nil {
		logger.WithError(err).Error("Sales history sync failed")
		return
	}

	s.syncMutex.Lock()
	s.lastResult = result
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logger.WithFields(logrus.Fields{
		"duration": time.Since(startTime).String(),
		"appended": result.Appended,
		"skipped":  result.Skipped,
	}).Info("Sales history sync completed")
}

// TriggerManualSync starts a sync run outside the cron schedule.
func (s *SalesSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sales history sync already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Starting manual sales history sync")
	go s.runSync(context.Background())
}

// TriggerRefresh rebuilds the whole history into a fresh dated file.
func (s *SalesSyncService) TriggerRefresh() {
	go func() {
		path, result, err := s.updater.RefreshHistory(context.Background())
		if err != nil {
			logrus.WithError(err).Error("Sales history refresh failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"path": path,
			"rows": result.Appended,
		}).Info("Sales history refresh completed")
	}()
}

// GetStatus returns the current scheduler state for the admin API.
func (s *SalesSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastResult != nil {
		status["last_appended"] = s.lastResult.Appended
		status["last_skipped"] = s.lastResult.Skipped
	}

	return status
}
