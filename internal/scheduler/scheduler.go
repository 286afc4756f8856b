package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"awesome-index/internal/pkg/config"
	"awesome-index/internal/service"
	"awesome-index/pkg/constants"
)

// Scheduler drives the nightly ingestion run.
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	syncSvc service.SyncService
	entries map[string]cron.EntryID
}

func NewScheduler(syncSvc service.SyncService, logger *zap.Logger) *Scheduler {
	// Seconds-granularity expressions, same format as the config sample.
	c := cron.New(cron.WithSeconds())

	return &Scheduler{
		cron:    c,
		logger:  logger,
		syncSvc: syncSvc,
		entries: make(map[string]cron.EntryID),
	}
}

// Start registers the sync job and starts the cron loop.
func (s *Scheduler) Start(cfg *config.Config) error {
	cronExpr := cfg.Sync.Cron
	if cronExpr == "" {
		cronExpr = "0 0 2 * * *" // nightly at 02:00
		s.logger.Warn("sync.cron not configured, using default", zap.String("cron", cronExpr))
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		result, err := s.syncSvc.Trigger(constants.SyncTriggerScheduled, "scheduler")
		if err != nil {
			s.logger.Error("scheduled sync trigger failed", zap.Error(err))
			return
		}
		if !result.Started {
			// A manual run is still in flight; the next tick will retry.
			s.logger.Info("scheduled sync skipped", zap.String("reason", result.Reason))
		}
	})
	if err != nil {
		s.logger.Error("failed to register sync job",
			zap.String("cron", cronExpr), zap.Error(err))
		return err
	}

	s.entries["sync"] = entryID
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("cron", cronExpr))

	return nil
}

// Stop halts the cron loop, waiting for a running job callback to return.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
