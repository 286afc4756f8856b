package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
)

type RepositoryRepository interface {
	// InsertIgnore inserts rows that are new by (owner, name) and leaves
	// existing rows untouched, preserving cross-registry sharing.
	InsertIgnore(tx *gorm.DB, repos []*model.Repository) error
	FindByOwnerAndName(owner, name string) (*model.Repository, error)
	// MapIDs resolves (owner, name) pairs to repository ids.
	MapIDs(repos []*model.Repository) (map[string]int64, error)
}

type repositoryRepository struct {
	db *gorm.DB
}

func NewRepositoryRepository(db *gorm.DB) RepositoryRepository {
	return &repositoryRepository{db: db}
}

// RepoKey joins owner and name into the map key used by MapIDs.
func RepoKey(owner, name string) string {
	return owner + "/" + name
}

func (r *repositoryRepository) InsertIgnore(tx *gorm.DB, repos []*model.Repository) error {
	if len(repos) == 0 {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&repos).Error
	if err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "insert repositories", err)
	}
	return nil
}

func (r *repositoryRepository) FindByOwnerAndName(owner, name string) (*model.Repository, error) {
	var repo model.Repository
	err := r.db.Where("owner = ? AND name = ?", owner, name).First(&repo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, responses.ErrRecordNotFound
		}
		return nil, responses.Wrap(responses.CodeDatabaseError, "query repository", err)
	}
	return &repo, nil
}

func (r *repositoryRepository) MapIDs(repos []*model.Repository) (map[string]int64, error) {
	if len(repos) == 0 {
		return map[string]int64{}, nil
	}

	owners := make([]string, 0, len(repos))
	wanted := make(map[string]bool, len(repos))
	for _, repo := range repos {
		owners = append(owners, repo.Owner)
		wanted[RepoKey(repo.Owner, repo.Name)] = true
	}

	var rows []model.Repository
	if err := r.db.Select("id, owner, name").Where("owner IN ?", owners).Find(&rows).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "resolve repository ids", err)
	}

	ids := make(map[string]int64, len(repos))
	for _, row := range rows {
		key := RepoKey(row.Owner, row.Name)
		if wanted[key] {
			ids[key] = row.ID
		}
	}
	return ids, nil
}
