package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"awesome-index/internal/model"
	"awesome-index/internal/pkg/archive"
	"awesome-index/internal/repository"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps concurrent worker goroutines serialized against
	// the shared-cache in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

type testEnv struct {
	db           *gorm.DB
	repoRepo     repository.RepositoryRepository
	registryRepo repository.RegistryRepository
	categoryRepo repository.CategoryRepository
	facetRepo    repository.FacetRepository
	runRepo      repository.SyncRunRepository
	logRepo      repository.SyncLogRepository
	searchRepo   repository.SearchRepository
	indexSvc     IndexService
	facetSvc     FacetService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:           db,
		repoRepo:     repository.NewRepositoryRepository(db),
		registryRepo: repository.NewRegistryRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		facetRepo:    repository.NewFacetRepository(db),
		runRepo:      repository.NewSyncRunRepository(db),
		logRepo:      repository.NewSyncLogRepository(db),
		searchRepo:   repository.NewSearchRepository(db),
	}
	env.indexSvc = NewIndexService(db, env.repoRepo, env.registryRepo, env.categoryRepo, 100, zap.NewNop())
	env.facetSvc = NewFacetService(db, env.facetRepo, 100, zap.NewNop())
	return env
}

func strPtr(s string) *string {
	return &s
}

// repoItem builds a list item carrying a repository reference.
func repoItem(owner, name string, stars int, language string, lastCommit int64, archived bool) archive.Item {
	info := &archive.RepoInfo{
		Owner:      owner,
		Repo:       name,
		Stars:      stars,
		LastCommit: lastCommit,
		Archived:   archived,
	}
	if language != "" {
		info.Language = strPtr(language)
	}
	return archive.Item{
		Title:       owner + "/" + name,
		Description: strPtr(name + " description"),
		RepoInfo:    info,
	}
}

func registryDoc(title, source string, sections ...archive.Section) *archive.RegistryDoc {
	return &archive.RegistryDoc{
		Metadata: archive.Metadata{
			Title:            title,
			Description:      title + " registry",
			LastUpdated:      1700000000,
			SourceRepository: source,
		},
		Items: sections,
	}
}

// stubFetcher hands back a canned document set, optionally blocking until
// released so tests can observe a run in flight.
type stubFetcher struct {
	docs    map[string]*archive.RegistryDoc
	err     error
	release chan struct{}
}

func (f *stubFetcher) Fetch(ctx context.Context) (map[string]*archive.RegistryDoc, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func countRows(t *testing.T, db *gorm.DB, mdl interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(mdl).Count(&count).Error)
	return count
}
