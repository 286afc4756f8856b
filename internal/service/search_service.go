package service

import (
	"math"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"awesome-index/internal/dto"
	"awesome-index/internal/model"
	"awesome-index/internal/pkg/category"
	"awesome-index/internal/repository"
	"awesome-index/pkg/constants"
)

const filterOptionsCacheKey = "filter_options"

// SearchService answers filtered, ranked, paginated queries over the indexed
// repositories.
type SearchService interface {
	Search(query *dto.SearchQuery) (*dto.SearchResponse, error)
	// FilterOptions lists the facet-backed filter values with counts.
	FilterOptions() (*dto.FilterOptionsResponse, error)
	ListRegistries() (*dto.RegistriesResponse, error)
}

// SearchOptions tunes query execution.
type SearchOptions struct {
	RawFetchCap     int
	DefaultPageSize int
	MaxPageSize     int
	FilterCacheTTL  time.Duration
}

type searchService struct {
	searchRepo   repository.SearchRepository
	registryRepo repository.RegistryRepository
	categoryRepo repository.CategoryRepository
	facetRepo    repository.FacetRepository
	opts         SearchOptions
	cache        *gocache.Cache
	logger       *zap.Logger
}

func NewSearchService(
	searchRepo repository.SearchRepository,
	registryRepo repository.RegistryRepository,
	categoryRepo repository.CategoryRepository,
	facetRepo repository.FacetRepository,
	opts SearchOptions,
	logger *zap.Logger,
) SearchService {
	if opts.RawFetchCap <= 0 {
		opts.RawFetchCap = 2000
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.FilterCacheTTL <= 0 {
		opts.FilterCacheTTL = 5 * time.Minute
	}
	return &searchService{
		searchRepo:   searchRepo,
		registryRepo: registryRepo,
		categoryRepo: categoryRepo,
		facetRepo:    facetRepo,
		opts:         opts,
		cache:        gocache.New(opts.FilterCacheTTL, opts.FilterCacheTTL),
		logger:       logger,
	}
}

func (s *searchService) Search(query *dto.SearchQuery) (*dto.SearchResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = s.opts.DefaultPageSize
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	filter := s.toFilter(query)

	rows, err := s.searchRepo.FetchRaw(filter, s.opts.RawFetchCap)
	if err != nil {
		return nil, err
	}
	total, err := s.searchRepo.CountDistinct(filter)
	if err != nil {
		return nil, err
	}

	items, err := s.aggregate(rows)
	if err != nil {
		return nil, err
	}
	sortItems(items, constants.NormalizeSortKey(query.Sort))

	resp := &dto.SearchResponse{
		Data:  []dto.SearchResultItem{},
		Total: total,
	}
	if offset < len(items) {
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		resp.Data = items[offset:end]
	}
	if offset+limit < len(items) {
		resp.HasMore = true
		next := offset + limit
		resp.NextCursor = &next
	}
	return resp, nil
}

// toFilter maps the bound query onto the repository-layer filter. The
// archived flag defaults to "hide archived".
func (s *searchService) toFilter(query *dto.SearchQuery) repository.SearchFilter {
	archived := false
	filter := repository.SearchFilter{
		Query:    strings.TrimSpace(query.Q),
		Registry: query.Registry,
		Language: query.Language,
		Archived: &archived,
		MinStars: query.MinStars,
	}
	if query.Archived != nil {
		filter.Archived = query.Archived
	}
	if query.Category != "" {
		// Accept either the display name or the slug.
		filter.CategorySlug = category.Slugify(query.Category)
	}
	return filter
}

// aggregate groups the raw rows by repository id and attaches each
// repository's full registry and category membership, not just the rows the
// filter happened to match.
func (s *searchService) aggregate(rows []repository.SearchRow) ([]dto.SearchResultItem, error) {
	byID := make(map[int64]*dto.SearchResultItem)
	var order []int64
	for _, row := range rows {
		if _, ok := byID[row.RepositoryID]; ok {
			continue
		}
		byID[row.RepositoryID] = &dto.SearchResultItem{
			ID:          row.RepositoryID,
			Owner:       row.Owner,
			Name:        row.Name,
			Description: row.Description,
			Stars:       row.Stars,
			Language:    row.Language,
			LastCommit:  row.LastCommit,
			Archived:    row.Archived,
			Quality:     QualityScore(row.Stars, row.LastCommit, time.Now()),
		}
		order = append(order, row.RepositoryID)
	}
	if len(order) == 0 {
		return nil, nil
	}

	regLinks, err := s.registryRepo.ListLinksByRepositoryIDs(order)
	if err != nil {
		return nil, err
	}
	catLinks, err := s.categoryRepo.ListLinksByRepositoryIDs(order)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	catByID := make(map[int64]*model.Category, len(categories))
	for _, cat := range categories {
		catByID[cat.ID] = cat
	}

	for _, link := range regLinks {
		item, ok := byID[link.RepositoryID]
		if !ok {
			continue
		}
		item.Registries = append(item.Registries, dto.RegistryMembership{
			Registry:     link.RegistryName,
			DisplayTitle: link.DisplayTitle,
		})
	}
	seen := make(map[int64]map[int64]bool)
	for _, link := range catLinks {
		item, ok := byID[link.RepositoryID]
		if !ok {
			continue
		}
		cat, ok := catByID[link.CategoryID]
		if !ok {
			continue
		}
		// The same category may be linked through several registries.
		if seen[link.RepositoryID] == nil {
			seen[link.RepositoryID] = make(map[int64]bool)
		}
		if seen[link.RepositoryID][link.CategoryID] {
			continue
		}
		seen[link.RepositoryID][link.CategoryID] = true
		item.Categories = append(item.Categories, dto.CategoryRef{
			Slug: cat.Slug,
			Name: cat.Name,
		})
	}

	items := make([]dto.SearchResultItem, 0, len(order))
	for _, id := range order {
		item := byID[id]
		sort.Slice(item.Registries, func(i, j int) bool {
			return item.Registries[i].Registry < item.Registries[j].Registry
		})
		sort.Slice(item.Categories, func(i, j int) bool {
			return item.Categories[i].Slug < item.Categories[j].Slug
		})
		items = append(items, *item)
	}
	return items, nil
}

func sortItems(items []dto.SearchResultItem, key string) {
	switch key {
	case constants.SortByName:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
			if a != b {
				return a < b
			}
			return items[i].Owner < items[j].Owner
		})
	case constants.SortByUpdated:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].LastCommit, items[j].LastCommit
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.After(*b)
		})
	case constants.SortByQuality:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Quality > items[j].Quality
		})
	default: // stars
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Stars > items[j].Stars
		})
	}
}

// QualityScore ranks a repository by log-scaled stars plus a freshness term
// that decays linearly over one year, with a derived activity bonus. A missing
// last-commit date contributes nothing.
func QualityScore(stars int, lastCommit *time.Time, now time.Time) float64 {
	if stars < 1 {
		stars = 1
	}
	freshness := 0.0
	if lastCommit != nil {
		days := now.Sub(*lastCommit).Hours() / 24
		if days < 0 {
			days = 0
		}
		freshness = 1 - days/365
		if freshness < 0 {
			freshness = 0
		}
	}
	return math.Log10(float64(stars)) + freshness*0.5 + (freshness*0.8)*0.3
}

func (s *searchService) FilterOptions() (*dto.FilterOptionsResponse, error) {
	if cached, ok := s.cache.Get(filterOptionsCacheKey); ok {
		return cached.(*dto.FilterOptionsResponse), nil
	}

	registries, err := s.facetRepo.CountByRegistry()
	if err != nil {
		return nil, err
	}
	categories, err := s.facetRepo.CountByCategory()
	if err != nil {
		return nil, err
	}
	languages, err := s.facetRepo.CountByLanguage()
	if err != nil {
		return nil, err
	}

	resp := &dto.FilterOptionsResponse{
		Registries: toFilterOptions(registries),
		Categories: toFilterOptions(categories),
		Languages:  toFilterOptions(languages),
	}
	s.cache.SetDefault(filterOptionsCacheKey, resp)
	return resp, nil
}

func toFilterOptions(counts []repository.FilterCount) []dto.FilterOption {
	options := make([]dto.FilterOption, 0, len(counts))
	for _, c := range counts {
		options = append(options, dto.FilterOption{Value: c.Value, Count: c.Count})
	}
	return options
}

func (s *searchService) ListRegistries() (*dto.RegistriesResponse, error) {
	registries, err := s.registryRepo.List()
	if err != nil {
		return nil, err
	}

	resp := &dto.RegistriesResponse{Registries: make([]dto.RegistryResponse, 0, len(registries))}
	for _, reg := range registries {
		resp.Registries = append(resp.Registries, dto.RegistryResponse{
			Name:             reg.Name,
			Title:            reg.Title,
			Description:      reg.Description,
			SourceRepository: reg.SourceRepository,
			LastUpdated:      reg.LastUpdated,
			ItemCount:        reg.ItemCount,
			StarsTotal:       reg.StarsTotal,
			SyncedAt:         reg.SyncedAt,
		})
	}
	resp.Total = len(resp.Registries)
	return resp, nil
}
