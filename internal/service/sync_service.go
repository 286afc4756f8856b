package service

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"awesome-index/internal/dto"
	"awesome-index/internal/model"
	"awesome-index/internal/pkg/archive"
	"awesome-index/internal/repository"
	"awesome-index/pkg/constants"
	"awesome-index/pkg/responses"
)

// ArchiveFetcher abstracts the snapshot download so runs can be driven by any
// document source.
type ArchiveFetcher interface {
	Fetch(ctx context.Context) (map[string]*archive.RegistryDoc, error)
}

// SyncService owns the ingestion run lifecycle: the single-flight guard,
// progress tracking, per-registry error isolation and the final facet rebuild.
type SyncService interface {
	// Trigger starts a run in the background. A run already in flight is a
	// normal rejection carried in the result, not an error.
	Trigger(trigger, triggeredBy string) (*dto.TriggerSyncResult, error)
	// Stop flips the running run to failed with the fixed stop message.
	// The in-flight registry finishes before the worker exits.
	Stop() error
	Status() (*dto.SyncStatusResponse, error)
	History(limit int) (*dto.SyncHistoryResponse, error)
}

// SyncOptions tunes run execution.
type SyncOptions struct {
	FetchTimeout  time.Duration
	FlushEvery    int
	RebuildFacets bool
}

type syncService struct {
	runRepo  repository.SyncRunRepository
	logRepo  repository.SyncLogRepository
	indexSvc IndexService
	facetSvc FacetService
	fetcher  ArchiveFetcher
	opts     SyncOptions
	logger   *zap.Logger

	stopRequested atomic.Bool
}

func NewSyncService(
	runRepo repository.SyncRunRepository,
	logRepo repository.SyncLogRepository,
	indexSvc IndexService,
	facetSvc FacetService,
	fetcher ArchiveFetcher,
	opts SyncOptions,
	logger *zap.Logger,
) SyncService {
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = 5
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 2 * time.Minute
	}
	return &syncService{
		runRepo:  runRepo,
		logRepo:  logRepo,
		indexSvc: indexSvc,
		facetSvc: facetSvc,
		fetcher:  fetcher,
		opts:     opts,
		logger:   logger,
	}
}

func (s *syncService) Trigger(trigger, triggeredBy string) (*dto.TriggerSyncResult, error) {
	latest, err := s.runRepo.Latest()
	if err != nil && !errors.Is(err, responses.ErrRecordNotFound) {
		return nil, err
	}
	if latest != nil && latest.Status == constants.SyncRunStatusRunning {
		return &dto.TriggerSyncResult{
			Started: false,
			Reason:  responses.ErrSyncAlreadyRunning.Message,
		}, nil
	}

	run := &model.SyncRun{
		Trigger:     trigger,
		Status:      constants.SyncRunStatusRunning,
		StartedAt:   time.Now(),
		TriggeredBy: triggeredBy,
	}
	// Row insert and latest-pointer update commit together; a failure here
	// leaves no stray running row behind to block later triggers.
	if err := s.runRepo.StartRun(run); err != nil {
		return nil, err
	}

	s.stopRequested.Store(false)
	go s.Execute(run)

	s.logger.Info("sync run started",
		zap.Int64("run_id", run.ID),
		zap.String("trigger", trigger),
		zap.String("triggered_by", triggeredBy))
	return &dto.TriggerSyncResult{Started: true, RunID: run.ID}, nil
}

func (s *syncService) Stop() error {
	latest, err := s.runRepo.Latest()
	if err != nil {
		if errors.Is(err, responses.ErrRecordNotFound) {
			return responses.ErrSyncNotRunning
		}
		return err
	}
	if latest.Status != constants.SyncRunStatusRunning {
		return responses.ErrSyncNotRunning
	}

	s.stopRequested.Store(true)

	now := time.Now()
	msg := constants.StopMessage
	latest.Status = constants.SyncRunStatusFailed
	latest.ErrorMessage = &msg
	latest.CurrentRegistry = nil
	latest.CompletedAt = &now
	if err := s.runRepo.Update(latest); err != nil {
		return err
	}

	s.logger.Info("sync run stopped", zap.Int64("run_id", latest.ID))
	return nil
}

// progress buffers run state between flushes so a crash loses at most
// flushEvery registries of bookkeeping.
type progress struct {
	processed  int
	current    *string
	sinceFlush int
	pending    []*model.SyncLog
	errors     []model.RunError
	success    int
	failed     int
}

// Execute runs the full ingestion pass for run. Exposed so scheduled and
// manual triggers share one code path; normally invoked on its own goroutine
// by Trigger.
func (s *syncService) Execute(run *model.SyncRun) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.FetchTimeout)
	defer cancel()

	p := &progress{}

	docs, err := s.fetcher.Fetch(ctx)
	if err != nil {
		if s.stopRequested.Load() {
			return
		}
		s.finishFailed(run, p, err.Error())
		return
	}
	if s.stopRequested.Load() {
		return
	}

	run.TotalRegistries = len(docs)
	if err := s.runRepo.UpdateTotal(run.ID, len(docs)); err != nil {
		s.finishFailed(run, p, err.Error())
		return
	}

	// Registries are written sequentially in a stable order.
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if s.stopRequested.Load() {
			// Stop already marked the run failed; just persist the
			// outcomes gathered so far.
			s.flushLogs(p)
			return
		}

		p.current = &name
		count, err := s.indexSvc.IndexRegistry(name, docs[name])
		if err != nil {
			p.failed++
			msg := err.Error()
			p.errors = append(p.errors, model.RunError{Registry: name, Message: msg})
			p.pending = append(p.pending, &model.SyncLog{
				RunID:        run.ID,
				RegistryName: name,
				Status:       constants.SyncLogStatusError,
				Message:      &msg,
			})
			s.logger.Error("registry sync failed",
				zap.Int64("run_id", run.ID),
				zap.String("registry", name),
				zap.Error(err))
		} else {
			p.success++
			p.pending = append(p.pending, &model.SyncLog{
				RunID:        run.ID,
				RegistryName: name,
				Status:       constants.SyncLogStatusSuccess,
				ItemCount:    count,
			})
		}

		p.processed++
		p.sinceFlush++
		if p.sinceFlush >= s.opts.FlushEvery {
			s.flush(run, p)
		}
	}

	if s.stopRequested.Load() {
		s.flushLogs(p)
		return
	}
	s.finishCompleted(run, p)
}

// flush persists buffered progress and pending log entries. Only progress
// columns are written so a concurrent stop's status transition survives.
func (s *syncService) flush(run *model.SyncRun, p *progress) {
	if err := s.runRepo.UpdateProgress(run.ID, p.processed, p.current, p.success, p.failed); err != nil {
		s.logger.Error("progress flush failed", zap.Int64("run_id", run.ID), zap.Error(err))
	}
	s.flushLogs(p)
	p.sinceFlush = 0
}

func (s *syncService) flushLogs(p *progress) {
	if len(p.pending) == 0 {
		return
	}
	if err := s.logRepo.CreateBatch(p.pending); err != nil {
		s.logger.Error("sync log flush failed", zap.Error(err))
		return
	}
	p.pending = nil
}

func (s *syncService) finishCompleted(run *model.SyncRun, p *progress) {
	now := time.Now()
	run.Status = constants.SyncRunStatusCompleted
	run.CompletedAt = &now
	run.ProcessedRegistries = p.processed
	run.CurrentRegistry = nil
	run.SuccessCount = p.success
	run.FailedCount = p.failed
	run.Errors = marshalRunErrors(p.errors)
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Error("finalize run failed", zap.Int64("run_id", run.ID), zap.Error(err))
	}
	s.flushLogs(p)

	s.logger.Info("sync run completed",
		zap.Int64("run_id", run.ID),
		zap.String("summary", constants.FormatSyncSummary(p.success, p.failed)))

	if s.opts.RebuildFacets {
		if _, err := s.facetSvc.Rebuild(); err != nil {
			s.logger.Error("facet rebuild failed", zap.Int64("run_id", run.ID), zap.Error(err))
		}
	}
}

// finishFailed flushes whatever progress exists before recording the fatal
// error, so a crash mid-run still leaves an inspectable trail.
func (s *syncService) finishFailed(run *model.SyncRun, p *progress, msg string) {
	s.flush(run, p)

	now := time.Now()
	run.Status = constants.SyncRunStatusFailed
	run.CompletedAt = &now
	run.CurrentRegistry = nil
	run.ErrorMessage = &msg
	run.Errors = marshalRunErrors(p.errors)
	if err := s.runRepo.Update(run); err != nil {
		s.logger.Error("finalize run failed", zap.Int64("run_id", run.ID), zap.Error(err))
	}

	s.logger.Error("sync run failed", zap.Int64("run_id", run.ID), zap.String("error", msg))
}

func (s *syncService) Status() (*dto.SyncStatusResponse, error) {
	latest, err := s.runRepo.Latest()
	if err != nil {
		if errors.Is(err, responses.ErrRecordNotFound) {
			return &dto.SyncStatusResponse{}, nil
		}
		return nil, err
	}

	logs, err := s.logRepo.ListByRun(latest.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SyncStatusResponse{Run: toRunInfo(latest)}
	for _, entry := range logs {
		resp.Logs = append(resp.Logs, dto.SyncLogInfo{
			RegistryName: entry.RegistryName,
			Status:       entry.Status,
			ItemCount:    entry.ItemCount,
			Message:      entry.Message,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return resp, nil
}

func (s *syncService) History(limit int) (*dto.SyncHistoryResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	runs, err := s.runRepo.History(limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.SyncHistoryResponse{Runs: make([]dto.SyncRunInfo, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, *toRunInfo(run))
	}
	resp.Total = len(resp.Runs)
	return resp, nil
}

func toRunInfo(run *model.SyncRun) *dto.SyncRunInfo {
	info := &dto.SyncRunInfo{
		ID:                  run.ID,
		Trigger:             run.Trigger,
		Status:              run.Status,
		StartedAt:           run.StartedAt,
		CompletedAt:         run.CompletedAt,
		TotalRegistries:     run.TotalRegistries,
		ProcessedRegistries: run.ProcessedRegistries,
		CurrentRegistry:     run.CurrentRegistry,
		SuccessCount:        run.SuccessCount,
		FailedCount:         run.FailedCount,
		ErrorMessage:        run.ErrorMessage,
		TriggeredBy:         run.TriggeredBy,
	}
	if len(run.Errors) > 0 {
		// Best effort; a decode failure just leaves the list empty.
		_ = sonic.Unmarshal(run.Errors, &info.Errors)
	}
	return info
}

func marshalRunErrors(errs []model.RunError) datatypes.JSON {
	if len(errs) == 0 {
		return nil
	}
	data, err := sonic.Marshal(errs)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
