package model

import (
	"time"
)

const (
	RegistryTableName     = "registries"
	RegistryRepoTableName = "registry_repos"
)

// Registry is one curated source list. The row is replaced wholesale on each
// re-index of that registry.
type Registry struct {
	BaseModel
	Name             string     `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      *string    `gorm:"type:text" json:"description"`
	SourceRepository string     `gorm:"size:255;not null" json:"source_repository"`
	LastUpdated      *time.Time `json:"last_updated"`
	ItemCount        int        `gorm:"not null;default:0" json:"item_count"`
	StarsTotal       int        `gorm:"not null;default:0" json:"stars_total"`
	SyncedAt         *time.Time `json:"synced_at"`
}

func (Registry) TableName() string {
	return RegistryTableName
}

// RegistryRepo links a registry to a repository with the display title used
// inside that registry. Unique per (registry, repository) pair.
type RegistryRepo struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	RegistryName string `gorm:"size:100;not null;uniqueIndex:idx_registry_repo,priority:1;index" json:"registry_name"`
	RepositoryID int64  `gorm:"not null;uniqueIndex:idx_registry_repo,priority:2;index" json:"repository_id"`
	DisplayTitle string `gorm:"size:255;not null" json:"display_title"`
}

func (RegistryRepo) TableName() string {
	return RegistryRepoTableName
}
