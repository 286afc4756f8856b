package repository

import (
	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
)

// FacetSourceRow is one joined (link, category, repository) row feeding the
// facet rebuild.
type FacetSourceRow struct {
	RepositoryID int64
	RegistryName string
	CategoryID   int64
	CategorySlug string
	CategoryName string
	Language     *string
}

// FilterCount is one facet-derived filter option with its match count.
type FilterCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type FacetRepository interface {
	DeleteAll(tx *gorm.DB) error
	CreateBatch(tx *gorm.DB, facets []*model.Facet) error
	// SourceRows selects the denormalization input, excluding archived
	// repositories.
	SourceRows() ([]FacetSourceRow, error)
	CountByRegistry() ([]FilterCount, error)
	CountByCategory() ([]FilterCount, error)
	CountByLanguage() ([]FilterCount, error)
}

type facetRepository struct {
	db *gorm.DB
}

func NewFacetRepository(db *gorm.DB) FacetRepository {
	return &facetRepository{db: db}
}

func (r *facetRepository) DeleteAll(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&model.Facet{}).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "clear facets", err)
	}
	return nil
}

func (r *facetRepository) CreateBatch(tx *gorm.DB, facets []*model.Facet) error {
	if len(facets) == 0 {
		return nil
	}
	if err := tx.Create(&facets).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "create facets", err)
	}
	return nil
}

func (r *facetRepository) SourceRows() ([]FacetSourceRow, error) {
	var rows []FacetSourceRow
	err := r.db.Table(model.CategoryLinkTableName+" cl").
		Select("cl.repository_id, cl.registry_name, c.id AS category_id, c.slug AS category_slug, c.name AS category_name, r.language").
		Joins("JOIN "+model.CategoryTableName+" c ON c.id = cl.category_id").
		Joins("JOIN "+model.RepositoryTableName+" r ON r.id = cl.repository_id").
		Where("r.archived = ?", false).
		Scan(&rows).Error
	if err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "select facet source rows", err)
	}
	return rows, nil
}

func (r *facetRepository) CountByRegistry() ([]FilterCount, error) {
	return r.countBy("registry_name")
}

func (r *facetRepository) CountByCategory() ([]FilterCount, error) {
	return r.countBy("category_name")
}

func (r *facetRepository) CountByLanguage() ([]FilterCount, error) {
	var counts []FilterCount
	err := r.db.Model(&model.Facet{}).
		Select("language AS value, COUNT(DISTINCT repository_id) AS count").
		Where("language IS NOT NULL").
		Group("language").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "count facets by language", err)
	}
	return counts, nil
}

func (r *facetRepository) countBy(column string) ([]FilterCount, error) {
	var counts []FilterCount
	err := r.db.Model(&model.Facet{}).
		Select(column + " AS value, COUNT(DISTINCT repository_id) AS count").
		Group(column).
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "count facets by "+column, err)
	}
	return counts, nil
}
