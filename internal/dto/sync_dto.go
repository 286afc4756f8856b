package dto

import (
	"time"

	"awesome-index/internal/model"
)

// TriggerSyncResult tells the caller whether a run actually started. A
// rejected trigger is a normal outcome, not an error.
type TriggerSyncResult struct {
	Started bool   `json:"started"`
	RunID   int64  `json:"run_id,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// SyncRunInfo is one run's lifecycle snapshot.
type SyncRunInfo struct {
	ID                  int64            `json:"id"`
	Trigger             string           `json:"trigger"`
	Status              string           `json:"status"`
	StartedAt           time.Time        `json:"started_at"`
	CompletedAt         *time.Time       `json:"completed_at"`
	TotalRegistries     int              `json:"total_registries"`
	ProcessedRegistries int              `json:"processed_registries"`
	CurrentRegistry     *string          `json:"current_registry"`
	SuccessCount        int              `json:"success_count"`
	FailedCount         int              `json:"failed_count"`
	Errors              []model.RunError `json:"errors,omitempty"`
	ErrorMessage        *string          `json:"error_message"`
	TriggeredBy         string           `json:"triggered_by"`
}

// SyncStatusResponse is the latest run plus its per-registry log.
type SyncStatusResponse struct {
	Run  *SyncRunInfo  `json:"run"`
	Logs []SyncLogInfo `json:"logs,omitempty"`
}

// SyncLogInfo is one per-registry outcome within a run.
type SyncLogInfo struct {
	RegistryName string    `json:"registry_name"`
	Status       string    `json:"status"`
	ItemCount    int       `json:"item_count"`
	Message      *string   `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// SyncHistoryQuery binds the history endpoint's query string.
type SyncHistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// SyncHistoryResponse lists past runs, newest first.
type SyncHistoryResponse struct {
	Runs  []SyncRunInfo `json:"runs"`
	Total int           `json:"total"`
}
