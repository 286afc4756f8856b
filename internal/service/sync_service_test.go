package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"awesome-index/internal/model"
	"awesome-index/internal/pkg/archive"
	"awesome-index/pkg/constants"
	"awesome-index/pkg/responses"
)

func newSyncService(env *testEnv, fetcher ArchiveFetcher) SyncService {
	return NewSyncService(env.runRepo, env.logRepo, env.indexSvc, env.facetSvc, fetcher,
		SyncOptions{
			FetchTimeout:  5 * time.Second,
			FlushEvery:    2,
			RebuildFacets: true,
		}, zap.NewNop())
}

func syncDocs() map[string]*archive.RegistryDoc {
	return map[string]*archive.RegistryDoc{
		"go": registryDoc("Awesome Go", "hub/awesome-go", archive.Section{
			Title: "Web Frameworks",
			Items: []archive.Item{repoItem("gin-gonic", "gin", 50000, "Go", 0, false)},
		}),
		"python": registryDoc("Awesome Python", "hub/awesome-python", archive.Section{
			Title: "Web Frameworks",
			Items: []archive.Item{repoItem("django", "django", 20000, "Python", 0, false)},
		}),
	}
}

func waitForFinished(t *testing.T, env *testEnv, runID int64) *model.SyncRun {
	t.Helper()

	var run *model.SyncRun
	require.Eventually(t, func() bool {
		r, err := env.runRepo.GetByID(runID)
		if err != nil {
			return false
		}
		run = r
		return r.Status != constants.SyncRunStatusRunning
	}, 5*time.Second, 10*time.Millisecond)
	return run
}

func TestTriggerRunsToCompletion(t *testing.T) {
	env := newTestEnv(t)
	svc := newSyncService(env, &stubFetcher{docs: syncDocs()})

	result, err := svc.Trigger(constants.SyncTriggerManual, "admin")
	require.NoError(t, err)
	require.True(t, result.Started)
	require.NotZero(t, result.RunID)

	run := waitForFinished(t, env, result.RunID)
	assert.Equal(t, constants.SyncRunStatusCompleted, run.Status)
	assert.Equal(t, 2, run.TotalRegistries)
	assert.Equal(t, 2, run.ProcessedRegistries)
	assert.Equal(t, 2, run.SuccessCount)
	assert.Equal(t, 0, run.FailedCount)
	assert.Nil(t, run.CurrentRegistry)
	require.NotNil(t, run.CompletedAt)
	assert.Equal(t, "admin", run.TriggeredBy)

	logs, err := env.logRepo.ListByRun(run.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, entry := range logs {
		assert.Equal(t, constants.SyncLogStatusSuccess, entry.Status)
		assert.Equal(t, 1, entry.ItemCount)
	}

	// Facets rebuild automatically after a successful pass.
	assert.EqualValues(t, 2, countRows(t, env.db, &model.Facet{}))
}

func TestTriggerRejectedWhileRunning(t *testing.T) {
	env := newTestEnv(t)
	release := make(chan struct{})
	svc := newSyncService(env, &stubFetcher{docs: syncDocs(), release: release})

	first, err := svc.Trigger(constants.SyncTriggerManual, "admin")
	require.NoError(t, err)
	require.True(t, first.Started)

	second, err := svc.Trigger(constants.SyncTriggerScheduled, "scheduler")
	require.NoError(t, err)
	assert.False(t, second.Started)
	assert.NotEmpty(t, second.Reason)

	// No second run row was created.
	assert.EqualValues(t, 1, countRows(t, env.db, &model.SyncRun{}))

	close(release)
	run := waitForFinished(t, env, first.RunID)
	assert.Equal(t, constants.SyncRunStatusCompleted, run.Status)

	// With the first run finished, triggering works again.
	third, err := svc.Trigger(constants.SyncTriggerManual, "admin")
	require.NoError(t, err)
	assert.True(t, third.Started)
	waitForFinished(t, env, third.RunID)
}

func TestFatalFetchErrorMarksRunFailed(t *testing.T) {
	env := newTestEnv(t)
	svc := newSyncService(env, &stubFetcher{err: errors.New("archive unreachable")})

	result, err := svc.Trigger(constants.SyncTriggerManual, "admin")
	require.NoError(t, err)
	require.True(t, result.Started)

	run := waitForFinished(t, env, result.RunID)
	assert.Equal(t, constants.SyncRunStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
	assert.Contains(t, *run.ErrorMessage, "archive unreachable")
	require.NotNil(t, run.CompletedAt)
}

func TestStopWhileRunning(t *testing.T) {
	env := newTestEnv(t)
	release := make(chan struct{})
	svc := newSyncService(env, &stubFetcher{docs: syncDocs(), release: release})

	result, err := svc.Trigger(constants.SyncTriggerManual, "admin")
	require.NoError(t, err)
	require.True(t, result.Started)

	require.NoError(t, svc.Stop())

	run, err := env.runRepo.GetByID(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, constants.SyncRunStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)
	assert.Equal(t, constants.StopMessage, *run.ErrorMessage)

	// Stopping twice is rejected.
	assert.ErrorIs(t, svc.Stop(), responses.ErrSyncNotRunning)

	// The worker exits without resurrecting the run.
	close(release)
	time.Sleep(50 * time.Millisecond)
	run, err = env.runRepo.GetByID(result.RunID)
	require.NoError(t, err)
	assert.Equal(t, constants.SyncRunStatusFailed, run.Status)
}

func TestStopWithoutRunningRun(t *testing.T) {
	env := newTestEnv(t)
	svc := newSyncService(env, &stubFetcher{docs: syncDocs()})

	assert.ErrorIs(t, svc.Stop(), responses.ErrSyncNotRunning)
}

func TestPerRegistryFailureContinues(t *testing.T) {
	env := newTestEnv(t)
	fetcher := &stubFetcher{docs: syncDocs()}
	svc := NewSyncService(env.runRepo, env.logRepo,
		&failingIndexer{inner: env.indexSvc, failFor: "go"},
		env.facetSvc, fetcher,
		SyncOptions{FetchTimeout: 5 * time.Second, FlushEvery: 2, RebuildFacets: false},
		zap.NewNop())

	result, err := svc.Trigger(constants.SyncTriggerManual, "admin")
	require.NoError(t, err)

	run := waitForFinished(t, env, result.RunID)
	assert.Equal(t, constants.SyncRunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.SuccessCount)
	assert.Equal(t, 1, run.FailedCount)
	require.NotEmpty(t, run.Errors)

	status, err := svc.Status()
	require.NoError(t, err)
	require.NotNil(t, status.Run)
	require.Len(t, status.Run.Errors, 1)
	assert.Equal(t, "go", status.Run.Errors[0].Registry)

	logs, err := env.logRepo.ListByRun(run.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
}

func TestStatusWithoutRuns(t *testing.T) {
	env := newTestEnv(t)
	svc := newSyncService(env, &stubFetcher{docs: syncDocs()})

	status, err := svc.Status()
	require.NoError(t, err)
	assert.Nil(t, status.Run)
}

func TestStartRunAtomicWithLatestPointer(t *testing.T) {
	env := newTestEnv(t)

	newRun := func() *model.SyncRun {
		return &model.SyncRun{
			Trigger:     constants.SyncTriggerManual,
			Status:      constants.SyncRunStatusRunning,
			StartedAt:   time.Now(),
			TriggeredBy: "admin",
		}
	}

	first := newRun()
	require.NoError(t, env.runRepo.StartRun(first))
	latest, err := env.runRepo.Latest()
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)

	// The pointer row is a singleton and repoints to the newest run.
	second := newRun()
	require.NoError(t, env.runRepo.StartRun(second))
	latest, err = env.runRepo.Latest()
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.EqualValues(t, 1, countRows(t, env.db, &model.SyncState{}))

	// When the pointer write fails, the run insert rolls back with it and
	// no orphaned running row is left behind.
	require.NoError(t, env.db.Migrator().DropTable(&model.SyncState{}))
	require.Error(t, env.runRepo.StartRun(newRun()))
	assert.EqualValues(t, 2, countRows(t, env.db, &model.SyncRun{}))
}

func TestHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := newSyncService(env, &stubFetcher{docs: syncDocs()})

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		run := &model.SyncRun{
			Trigger:     constants.SyncTriggerScheduled,
			Status:      constants.SyncRunStatusCompleted,
			StartedAt:   base.Add(time.Duration(i) * time.Minute),
			TriggeredBy: "scheduler",
		}
		require.NoError(t, env.runRepo.Create(run))
	}

	history, err := svc.History(2)
	require.NoError(t, err)
	require.Len(t, history.Runs, 2)
	assert.True(t, history.Runs[0].StartedAt.After(history.Runs[1].StartedAt))
}

// failingIndexer fails a single registry to exercise error isolation.
type failingIndexer struct {
	inner   IndexService
	failFor string
}

func (f *failingIndexer) IndexRegistry(name string, doc *archive.RegistryDoc) (int, error) {
	if name == f.failFor {
		return 0, errors.New("simulated write failure")
	}
	return f.inner.IndexRegistry(name, doc)
}
