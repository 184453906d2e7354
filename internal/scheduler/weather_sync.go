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
)

// WeatherSyncService schedules the incremental weather history updates. One
// job drives every weather provider (Visual Crossing, Meteostat) in turn;
// each provider fails or succeeds on its own, so a broken feed does not hold
// back the other history.
type WeatherSyncService struct {
	scheduler           *gocron.Scheduler
	cronSchedule        string
	enabled             bool
	updaters            []*updating.Service
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResults         map[string]*updating.Result
}

func NewWeatherSyncService(appConfig *config.Config, updaters ...*updating.Service) *WeatherSyncService {
	return &WeatherSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		cronSchedule: appConfig.WeatherSync.CronSchedule,
		enabled:      appConfig.WeatherSync.Enabled,
		updaters:     updaters,
		lastResults:  make(map[string]*updating.Result),
	}
}

func (s *WeatherSyncService) Start(ctx context.Context) error {
	if !s.enabled {
		logrus.Info("Weather history sync disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.cronSchedule).Info("Starting weather history sync scheduler")

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.runSync(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling weather history sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping weather history sync scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *WeatherSyncService) runSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Weather history sync already running, skipping")
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

	startTime := time.Now()
	logrus.Info("Starting weather history sync")

	for _, updater := range s.updaters {
		result, err := updater.UpdateHistory(ctx)
		if err != nil {
			logrus.WithError(err).Error("Weather history sync failed")
			continue
		}

		s.syncMutex.Lock()
		s.lastResults[result.Provider] = result
		s.syncMutex.Unlock()

		logrus.WithFields(logrus.Fields{
			"provider": result.Provider,
			"appended": result.Appended,
			"skipped":  result.Skipped,
		}).Info("Weather history updated")
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithField("duration", time.Since(startTime).String()).Info("Weather history sync completed")
}

func (s *WeatherSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Weather history sync already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Starting manual weather history sync")
	go s.runSync(context.Background())
}

func (s *WeatherSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.enabled,
		"sync_cron":              s.cronSchedule,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	providers := make(map[string]any, len(s.lastResults))
	for provider, result := range s.lastResults {
		providers[provider] = map[string]any{
			"last_appended": result.Appended,
			"last_skipped":  result.Skipped,
		}
	}
	if len(providers) > 0 {
		status["providers"] = providers
	}

	return status
}
