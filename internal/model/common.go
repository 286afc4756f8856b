package model

import (
	"time"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// All returns every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Repository{},
		&Registry{},
		&RegistryRepo{},
		&Category{},
		&CategoryLink{},
		&Facet{},
		&SyncRun{},
		&SyncState{},
		&SyncLog{},
	}
}
