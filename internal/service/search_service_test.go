package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"awesome-index/internal/dto"
	"awesome-index/internal/pkg/archive"
)

func newSearchEnv(t *testing.T) (*testEnv, SearchService) {
	t.Helper()

	env := newTestEnv(t)
	now := time.Now().Unix()
	day := int64(24 * 3600)

	goDoc := registryDoc("Awesome Go", "hub/awesome-go",
		archive.Section{
			Title: "Web Frameworks",
			Items: []archive.Item{
				repoItem("gin-gonic", "gin", 50000, "Go", now, false),
				repoItem("labstack", "echo", 8000, "Go", now-100*day, false),
			},
		},
		archive.Section{
			Title: "Testing",
			Items: []archive.Item{repoItem("stretchr", "testify", 2000, "Go", now-400*day, false)},
		},
	)
	pyDoc := registryDoc("Awesome Python", "hub/awesome-python", archive.Section{
		Title: "Web Frameworks",
		Items: []archive.Item{
			repoItem("django", "django", 20000, "Python", now-30*day, false),
			repoItem("pallets", "flask", 10000, "Python", now-60*day, true), // archived
		},
	})

	_, err := env.indexSvc.IndexRegistry("go", goDoc)
	require.NoError(t, err)
	_, err = env.indexSvc.IndexRegistry("python", pyDoc)
	require.NoError(t, err)
	_, err = env.facetSvc.Rebuild()
	require.NoError(t, err)

	svc := NewSearchService(env.searchRepo, env.registryRepo, env.categoryRepo, env.facetRepo,
		SearchOptions{RawFetchCap: 2000, DefaultPageSize: 20, MaxPageSize: 100}, zap.NewNop())
	return env, svc
}

func resultNames(items []dto.SearchResultItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestSearchDefaultExcludesArchived(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{})
	require.NoError(t, err)

	assert.EqualValues(t, 4, resp.Total)
	require.NotEmpty(t, resp.Data)
	// Default sort is stars descending.
	assert.Equal(t, []string{"gin", "django", "echo", "testify"}, resultNames(resp.Data))
	assert.False(t, resp.HasMore)
}

func TestSearchArchivedFilter(t *testing.T) {
	_, svc := newSearchEnv(t)

	archived := true
	resp, err := svc.Search(&dto.SearchQuery{Archived: &archived})
	require.NoError(t, err)

	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "flask", resp.Data[0].Name)
	assert.True(t, resp.Data[0].Archived)
}

func TestSearchRegistryFilterKeepsFullMembership(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Registry: "go"})
	require.NoError(t, err)

	assert.EqualValues(t, 3, resp.Total)
	assert.Equal(t, []string{"gin", "echo", "testify"}, resultNames(resp.Data))
	for _, item := range resp.Data {
		require.Len(t, item.Registries, 1)
		assert.Equal(t, "go", item.Registries[0].Registry)
		require.NotEmpty(t, item.Categories)
	}
}

func TestSearchCategoryFilter(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Category: "Testing"})
	require.NoError(t, err)

	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "testify", resp.Data[0].Name)
}

func TestSearchLanguageAndMinStars(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Language: "Python"})
	require.NoError(t, err)
	assert.Equal(t, []string{"django"}, resultNames(resp.Data))

	resp, err = svc.Search(&dto.SearchQuery{MinStars: 10000})
	require.NoError(t, err)
	assert.Equal(t, []string{"gin", "django"}, resultNames(resp.Data))
	assert.EqualValues(t, 2, resp.Total)
}

func TestSearchTextQuery(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Q: "GIN"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gin"}, resultNames(resp.Data))

	// Owner matches too.
	resp, err = svc.Search(&dto.SearchQuery{Q: "stretchr"})
	require.NoError(t, err)
	assert.Equal(t, []string{"testify"}, resultNames(resp.Data))
}

func TestSearchEscapesLikeWildcards(t *testing.T) {
	env, svc := newSearchEnv(t)

	doc := registryDoc("Awesome Misc", "hub/awesome-misc", archive.Section{
		Title: "Utilities",
		Items: []archive.Item{
			{
				Title:       "wild",
				Description: strPtr("contains 100%_literal text"),
				RepoInfo:    &archive.RepoInfo{Owner: "x", Repo: "wild", Stars: 5},
			},
			{
				Title:       "tame",
				Description: strPtr("contains 100 anything literal text"),
				RepoInfo:    &archive.RepoInfo{Owner: "x", Repo: "tame", Stars: 5},
			},
		},
	})
	_, err := env.indexSvc.IndexRegistry("misc", doc)
	require.NoError(t, err)

	// "%" and "_" in user input match only their literal characters.
	resp, err := svc.Search(&dto.SearchQuery{Q: "100%_literal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wild"}, resultNames(resp.Data))
	assert.EqualValues(t, 1, resp.Total)
}

func TestSearchSortName(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Sort: "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"django", "echo", "gin", "testify"}, resultNames(resp.Data))
}

func TestSearchSortUpdated(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Sort: "updated"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gin", "django", "echo", "testify"}, resultNames(resp.Data))
}

func TestSearchSortQuality(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Sort: "quality"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Data)
	assert.Equal(t, "gin", resp.Data[0].Name)
	for i := 1; i < len(resp.Data); i++ {
		assert.GreaterOrEqual(t, resp.Data[i-1].Quality, resp.Data[i].Quality)
	}
}

func TestSearchUnknownSortFallsBackToStars(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.Search(&dto.SearchQuery{Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gin", "django", "echo", "testify"}, resultNames(resp.Data))
}

func TestSearchPaginationChaining(t *testing.T) {
	_, svc := newSearchEnv(t)

	var all []string
	offset := 0
	for {
		resp, err := svc.Search(&dto.SearchQuery{Limit: 2, Offset: offset})
		require.NoError(t, err)
		all = append(all, resultNames(resp.Data)...)
		if !resp.HasMore {
			assert.Nil(t, resp.NextCursor)
			break
		}
		require.NotNil(t, resp.NextCursor)
		assert.Equal(t, offset+2, *resp.NextCursor)
		offset = *resp.NextCursor
	}

	assert.Equal(t, []string{"gin", "django", "echo", "testify"}, all)
}

func TestQualityScore(t *testing.T) {
	now := time.Now()

	fresh := QualityScore(50000, &now, now)
	assert.InDelta(t, 5.438, fresh, 0.001)

	assert.Zero(t, QualityScore(0, nil, now))

	old := now.AddDate(-2, 0, 0)
	stale := QualityScore(50000, &old, now)
	assert.InDelta(t, 4.69897, stale, 0.001) // freshness clamped to 0

	halfYear := now.AddDate(0, -6, 0)
	mid := QualityScore(1, &halfYear, now)
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 0.74)
}

func TestFilterOptions(t *testing.T) {
	_, svc := newSearchEnv(t)

	options, err := svc.FilterOptions()
	require.NoError(t, err)

	byValue := func(opts []dto.FilterOption) map[string]int64 {
		m := make(map[string]int64)
		for _, o := range opts {
			m[o.Value] = o.Count
		}
		return m
	}

	registries := byValue(options.Registries)
	assert.EqualValues(t, 3, registries["go"])
	assert.EqualValues(t, 1, registries["python"]) // flask archived

	categories := byValue(options.Categories)
	assert.EqualValues(t, 3, categories["Web Frameworks"])
	assert.EqualValues(t, 1, categories["Testing"])

	languages := byValue(options.Languages)
	assert.EqualValues(t, 3, languages["Go"])
	assert.EqualValues(t, 1, languages["Python"])
}

func TestListRegistries(t *testing.T) {
	_, svc := newSearchEnv(t)

	resp, err := svc.ListRegistries()
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Registries, 2)
	assert.Equal(t, "go", resp.Registries[0].Name)
	assert.Equal(t, 3, resp.Registries[0].ItemCount)
	assert.Equal(t, 60000, resp.Registries[0].StarsTotal)
	assert.Equal(t, "python", resp.Registries[1].Name)
}
