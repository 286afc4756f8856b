package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SyncRunTableName   = "sync_runs"
	SyncStateTableName = "sync_state"
	SyncLogTableName   = "sync_logs"
)

// RunError is one entry of a run's structured error list.
type RunError struct {
	Registry string `json:"registry"`
	Message  string `json:"message"`
}

// SyncRun records one ingestion run's lifecycle.
type SyncRun struct {
	ID                  int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Trigger             string         `gorm:"size:20;not null" json:"trigger"` // manual / scheduled
	Status              string         `gorm:"size:20;not null;index" json:"status"`
	StartedAt           time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt         *time.Time     `json:"completed_at"`
	TotalRegistries     int            `gorm:"not null;default:0" json:"total_registries"`
	ProcessedRegistries int            `gorm:"not null;default:0" json:"processed_registries"`
	CurrentRegistry     *string        `gorm:"size:100" json:"current_registry"`
	SuccessCount        int            `gorm:"not null;default:0" json:"success_count"`
	FailedCount         int            `gorm:"not null;default:0" json:"failed_count"`
	Errors              datatypes.JSON `gorm:"type:json" json:"errors,omitempty"`
	ErrorMessage        *string        `gorm:"type:text" json:"error_message"`
	TriggeredBy         string         `gorm:"size:100;not null" json:"triggered_by"`
}

func (SyncRun) TableName() string {
	return SyncRunTableName
}

// SyncState is the system-wide "latest run" pointer. Exactly one row (id=1),
// last-writer-wins, so multiple service instances agree on the single-flight
// guard.
type SyncState struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	RunID     int64     `gorm:"not null" json:"run_id"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (SyncState) TableName() string {
	return SyncStateTableName
}

// SyncLog is an append-only audit record of one per-registry outcome.
type SyncLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID        int64     `gorm:"not null;index" json:"run_id"`
	RegistryName string    `gorm:"size:100;not null" json:"registry_name"`
	Status       string    `gorm:"size:20;not null" json:"status"` // success / error
	ItemCount    int       `gorm:"not null;default:0" json:"item_count"`
	Message      *string   `gorm:"type:text" json:"message"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (SyncLog) TableName() string {
	return SyncLogTableName
}
