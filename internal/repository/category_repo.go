package repository

import (
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
)

// categoryCacheTTL bounds staleness of the slug -> category cache used while
// indexing. Category rows are append-only so a short TTL is plenty.
const categoryCacheTTL = 10 * time.Minute

type CategoryRepository interface {
	// GetOrCreate returns the category row for slug, creating it with the
	// given canonical name when missing.
	GetOrCreate(slug, name string) (*model.Category, error)
	List() ([]*model.Category, error)
	DeleteLinksByRegistry(tx *gorm.DB, registryName string) error
	CreateLinks(tx *gorm.DB, links []*model.CategoryLink) error
	ListLinksByRepositoryIDs(ids []int64) ([]*model.CategoryLink, error)
}

type categoryRepository struct {
	db    *gorm.DB
	cache *gocache.Cache
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{
		db:    db,
		cache: gocache.New(categoryCacheTTL, categoryCacheTTL),
	}
}

func (r *categoryRepository) GetOrCreate(slug, name string) (*model.Category, error) {
	if cached, ok := r.cache.Get(slug); ok {
		return cached.(*model.Category), nil
	}

	var cat model.Category
	err := r.db.Where("slug = ?", slug).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cat = model.Category{Slug: slug, Name: name}
		err = r.db.Create(&cat).Error
	}
	if err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "get or create category", err)
	}

	r.cache.SetDefault(slug, &cat)
	return &cat, nil
}

func (r *categoryRepository) List() ([]*model.Category, error) {
	var categories []*model.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "list categories", err)
	}
	return categories, nil
}

func (r *categoryRepository) DeleteLinksByRegistry(tx *gorm.DB, registryName string) error {
	if err := tx.Where("registry_name = ?", registryName).Delete(&model.CategoryLink{}).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "delete category links", err)
	}
	return nil
}

func (r *categoryRepository) CreateLinks(tx *gorm.DB, links []*model.CategoryLink) error {
	if len(links) == 0 {
		return nil
	}
	if err := tx.Create(&links).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "create category links", err)
	}
	return nil
}

func (r *categoryRepository) ListLinksByRepositoryIDs(ids []int64) ([]*model.CategoryLink, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var links []*model.CategoryLink
	if err := r.db.Where("repository_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "query category links", err)
	}
	return links, nil
}
