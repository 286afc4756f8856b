package model

import (
	"time"
)

const RepositoryTableName = "repositories"

// Repository is one deduplicated code repository. A single row is shared by
// every registry and category that references the same (owner, name) pair.
type Repository struct {
	BaseModel
	Owner       string     `gorm:"size:100;not null;uniqueIndex:idx_owner_name,priority:1" json:"owner"`
	Name        string     `gorm:"size:100;not null;uniqueIndex:idx_owner_name,priority:2" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	Stars       int        `gorm:"not null;default:0;index" json:"stars"`
	Language    *string    `gorm:"size:50;index" json:"language"`
	LastCommit  *time.Time `json:"last_commit"`
	Archived    bool       `gorm:"not null;default:false;index" json:"archived"`
}

func (Repository) TableName() string {
	return RepositoryTableName
}
