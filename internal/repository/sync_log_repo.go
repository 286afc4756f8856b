package repository

import (
	"gorm.io/gorm"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
)

type SyncLogRepository interface {
	// CreateBatch flushes a buffered slice of per-registry outcomes.
	CreateBatch(logs []*model.SyncLog) error
	ListByRun(runID int64) ([]*model.SyncLog, error)
}

type syncLogRepository struct {
	db *gorm.DB
}

func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

func (r *syncLogRepository) CreateBatch(logs []*model.SyncLog) error {
	if len(logs) == 0 {
		return nil
	}
	if err := r.db.Create(&logs).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "create sync logs", err)
	}
	return nil
}

func (r *syncLogRepository) ListByRun(runID int64) ([]*model.SyncLog, error) {
	var logs []*model.SyncLog
	if err := r.db.Where("run_id = ?", runID).Order("id ASC").Find(&logs).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "list sync logs", err)
	}
	return logs, nil
}
