package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"awesome-index/internal/model"
	"awesome-index/pkg/responses"
)

type SyncRunRepository interface {
	Create(run *model.SyncRun) error
	// StartRun inserts the run and repoints the state row at it atomically,
	// so a running row can never exist without being the latest.
	StartRun(run *model.SyncRun) error
	Update(run *model.SyncRun) error
	// UpdateTotal records the registry count once the snapshot is known.
	UpdateTotal(runID int64, total int) error
	// UpdateProgress writes the progress columns only, leaving status
	// untouched so it cannot race a concurrent stop.
	UpdateProgress(runID int64, processed int, current *string, success, failed int) error
	GetByID(id int64) (*model.SyncRun, error)
	// Latest follows the single-row state pointer to the most recent run.
	// Returns ErrRecordNotFound when no run has ever been recorded.
	Latest() (*model.SyncRun, error)
	// History lists finished and running runs, newest first.
	History(limit int) ([]*model.SyncRun, error)
}

type syncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) Create(run *model.SyncRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "create sync run", err)
	}
	return nil
}

func (r *syncRunRepository) Update(run *model.SyncRun) error {
	if err := r.db.Save(run).Error; err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "update sync run", err)
	}
	return nil
}

func (r *syncRunRepository) UpdateTotal(runID int64, total int) error {
	err := r.db.Model(&model.SyncRun{}).Where("id = ?", runID).
		Update("total_registries", total).Error
	if err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "update sync run total", err)
	}
	return nil
}

func (r *syncRunRepository) UpdateProgress(runID int64, processed int, current *string, success, failed int) error {
	err := r.db.Model(&model.SyncRun{}).Where("id = ?", runID).
		Updates(map[string]interface{}{
			"processed_registries": processed,
			"current_registry":     current,
			"success_count":        success,
			"failed_count":         failed,
		}).Error
	if err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "update sync run progress", err)
	}
	return nil
}

func (r *syncRunRepository) GetByID(id int64) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, responses.ErrRecordNotFound
		}
		return nil, responses.Wrap(responses.CodeDatabaseError, "query sync run", err)
	}
	return &run, nil
}

func (r *syncRunRepository) Latest() (*model.SyncRun, error) {
	var state model.SyncState
	err := r.db.Where("id = ?", 1).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, responses.ErrRecordNotFound
		}
		return nil, responses.Wrap(responses.CodeDatabaseError, "query sync state", err)
	}
	return r.GetByID(state.RunID)
}

func (r *syncRunRepository) StartRun(run *model.SyncRun) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		state := model.SyncState{ID: 1, RunID: run.ID}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"run_id", "updated_at"}),
		}).Create(&state).Error
	})
	if err != nil {
		return responses.Wrap(responses.CodeDatabaseError, "start sync run", err)
	}
	return nil
}

func (r *syncRunRepository) History(limit int) ([]*model.SyncRun, error) {
	var runs []*model.SyncRun
	if err := r.db.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, responses.Wrap(responses.CodeDatabaseError, "list sync runs", err)
	}
	return runs, nil
}
