package repository

import (
	"errors"

	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
)

type RegistryRepository interface {
	GetByName(name string) (*model.Registry, error)
	List() ([]*model.Registry, error)
	// DeleteByName removes the registry metadata row; part of the
	// wholesale delete-then-insert replacement.
	DeleteByName(tx *gorm.DB, name string) error
	Create(tx *gorm.DB, registry *model.Registry) error
	DeleteLinksByRegistry(tx *gorm.DB, name string) error
	CreateLinks(tx *gorm.DB, links []*model.RegistryRepo) error
	ListLinksByRepositoryIDs(ids []int64) ([]*model.RegistryRepo, error)
}

type registryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) RegistryRepository {
	return &registryRepository{db: db}
}

func (r *registryRepository) GetByName(name string) (*model.Registry, error) {
	var registry model.Registry
	err := r.db.Where("name = ?", name).First(&registry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, responses.ErrRecordNotFound
		}
		return nil, responses.Wrap(responses.CodeDatabaseError, "query registry", err)
	}
	return &registry, nil
}

func (r *registryRepository) List() ([]*model.Registry, error) {
	var registries []*model.Registry
	if err := r.db.Order("name ASC").Find(&registries).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "list registries", err)
	}
	return registries, nil
}

func (r *registryRepository) DeleteByName(tx *gorm.DB, name string) error {
	if err := tx.Where("name = ?", name).Delete(&model.Registry{}).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "delete registry", err)
	}
	return nil
}

func (r *registryRepository) Create(tx *gorm.DB, registry *model.Registry) error {
	if err := tx.Create(registry).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "create registry", err)
	}
	return nil
}

func (r *registryRepository) DeleteLinksByRegistry(tx *gorm.DB, name string) error {
	if err := tx.Where("registry_name = ?", name).Delete(&model.RegistryRepo{}).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "delete registry links", err)
	}
	return nil
}

func (r *registryRepository) CreateLinks(tx *gorm.DB, links []*model.RegistryRepo) error {
	if len(links) == 0 {
		return nil
	}
	if err := tx.Create(&links).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "create registry links", err)
	}
	return nil
}

func (r *registryRepository) ListLinksByRepositoryIDs(ids []int64) ([]*model.RegistryRepo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var links []*model.RegistryRepo
	if err := r.db.Where("repository_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "query registry links", err)
	}
	return links, nil
}
