package repository

import (
	"time"

	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
	"awesome-index/pkg/utils"
)

// SearchFilter is the fully-typed filter set applied to the joined rows.
// Zero values mean "not filtered".
type SearchFilter struct {
	Query    string
	Registry string
	// CategorySlug joins through the facet table when set.
	CategorySlug string
	Language     string
	Archived     *bool
	MinStars     int
}

// SearchRow is one (repository, registry link) pair matching the filter.
// The same repository appears once per listing registry; aggregation happens
// in the service layer.
type SearchRow struct {
	RepositoryID int64
	Owner        string
	Name         string
	Description  *string
	Stars        int
	Language     *string
	LastCommit   *time.Time
	Archived     bool
	RegistryName string
	DisplayTitle string
}

type SearchRepository interface {
	// FetchRaw returns up to limit matching rows. The cap is a documented
	// scalability bound: result sets past it are truncated before
	// aggregation.
	FetchRaw(filter SearchFilter, limit int) ([]SearchRow, error)
	// CountDistinct counts distinct repositories under the same filter,
	// uncapped.
	CountDistinct(filter SearchFilter) (int64, error)
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) FetchRaw(filter SearchFilter, limit int) ([]SearchRow, error) {
	var rows []SearchRow
	query := r.base(filter).
		Select("r.id AS repository_id, r.owner, r.name, r.description, r.stars, r.language, r.last_commit, r.archived, rr.registry_name, rr.display_title").
		Order("r.stars DESC, r.id ASC").
		Limit(limit)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "search repositories", err)
	}
	return rows, nil
}

func (r *searchRepository) CountDistinct(filter SearchFilter) (int64, error) {
	var count int64
	err := r.base(filter).
		Select("COUNT(DISTINCT r.id)").
		Scan(&count).Error
	if err != nil {
		return 0, responses.Wrap(responses.CodeDatabaseError, "count search results", err)
	}
	return count, nil
}

// base builds the joined, filtered query shared by fetch and count.
func (r *searchRepository) base(filter SearchFilter) *gorm.DB {
	query := r.db.Table(model.RegistryRepoTableName + " rr").
		Joins("JOIN " + model.RepositoryTableName + " r ON r.id = rr.repository_id")

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN "+model.FacetTableName+" f ON f.repository_id = r.id AND f.registry_name = rr.registry_name").
			Where("f.category_slug = ?", filter.CategorySlug)
	}
	if filter.Query != "" {
		pattern := utils.ContainsPattern(filter.Query)
		query = query.Where(
			`(r.name LIKE ? ESCAPE '\' OR r.owner LIKE ? ESCAPE '\' OR r.description LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}
	if filter.Registry != "" {
		query = query.Where("rr.registry_name = ?", filter.Registry)
	}
	if filter.Language != "" {
		query = query.Where("r.language = ?", filter.Language)
	}
	if filter.Archived != nil {
		query = query.Where("r.archived = ?", *filter.Archived)
	}
	if filter.MinStars > 0 {
		query = query.Where("r.stars >= ?", filter.MinStars)
	}
	return query
}
