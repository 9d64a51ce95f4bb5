package ledger

import (
	"errors"
	"fmt"
	"time"

	"ledgerview/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBatchNotFound   = errors.New("upload batch not found")
	ErrRecordNotFound  = errors.New("upload record not found")
	ErrBatchNotPending = errors.New("upload batch has already been submitted")
)

// uploadRepository implements UploadRepositoryInterface
type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new upload repository
func NewUploadRepository(db *gorm.DB) UploadRepositoryInterface {
	return &uploadRepository{
		db: db,
	}
}

// CreateBatch persists a previewed batch together with its records
func (r *uploadRepository) CreateBatch(batch *models.UploadBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create upload batch: %w", err)
	}
	return nil
}

// GetBatchByID retrieves a batch with its records ordered by row index
func (r *uploadRepository) GetBatchByID(id string) (*models.UploadBatch, error) {
	var batch models.UploadBatch
	if err := r.db.Preload("Records", func(db *gorm.DB) *gorm.DB {
		return db.Order("row_index ASC")
	}).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get upload batch: %w", err)
	}
	return &batch, nil
}

// GetBatchesByAccount retrieves the most recent batches for an account
func (r *uploadRepository) GetBatchesByAccount(accountID int64, limit int) ([]models.UploadBatch, error) {
	var batches []models.UploadBatch
	if err := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC").Limit(limit).
		Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to get upload batches for account: %w", err)
	}
	return batches, nil
}

// GetRecentBatches retrieves the most recent batches across all accounts
func (r *uploadRepository) GetRecentBatches(limit int) ([]models.UploadBatch, error) {
	var batches []models.UploadBatch
	if err := r.db.Order("created_at DESC").Limit(limit).
		Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent upload batches: %w", err)
	}
	return batches, nil
}

// MarkSubmitting transitions a previewed batch to submitting. The guard on the
// current status makes double-submits fail instead of re-running the batch.
func (r *uploadRepository) MarkSubmitting(batchID string) error {
	now := time.Now().UTC()
	result := r.db.Model(&models.UploadBatch{}).
		Where("id = ? AND status = ?", batchID, models.BatchStatusPreviewed).
		Updates(map[string]interface{}{
			"status":       models.BatchStatusSubmitting,
			"submitted_at": &now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark batch submitting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.UploadBatch{}).
			Where("id = ?", batchID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check batch existence: %w", err)
		}
		if count == 0 {
			return ErrBatchNotFound
		}
		return ErrBatchNotPending
	}
	return nil
}

// MarkRecordCommitted marks a single record as committed upstream
func (r *uploadRepository) MarkRecordCommitted(batchID string, rowIndex int) error {
	return r.updateRecordStatus(batchID, rowIndex, models.RecordStatusCommitted, "")
}

// MarkRecordFailed marks a single record as rejected upstream
func (r *uploadRepository) MarkRecordFailed(batchID string, rowIndex int, reason string) error {
	return r.updateRecordStatus(batchID, rowIndex, models.RecordStatusFailed, reason)
}

func (r *uploadRepository) updateRecordStatus(batchID string, rowIndex int, status, reason string) error {
	updates := map[string]interface{}{"status": status}
	if reason != "" {
		updates["error"] = reason
	}

	result := r.db.Model(&models.UploadRecord{}).
		Where("batch_id = ? AND row_index = ?", batchID, rowIndex).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update record status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// MarkRemainingSkipped marks every record from firstSkippedIndex onward as
// skipped. Called after a mid-batch failure so the ledger records which rows
// never reached the backend.
func (r *uploadRepository) MarkRemainingSkipped(batchID string, firstSkippedIndex int) error {
	if err := r.db.Model(&models.UploadRecord{}).
		Where("batch_id = ? AND row_index >= ? AND status = ?",
			batchID, firstSkippedIndex, models.RecordStatusPending).
		Update("status", models.RecordStatusSkipped).Error; err != nil {
		return fmt.Errorf("failed to mark remaining records skipped: %w", err)
	}
	return nil
}

// CompleteBatch transitions a submitting batch to completed
func (r *uploadRepository) CompleteBatch(batchID string) error {
	result := r.db.Model(&models.UploadBatch{}).
		Where("id = ? AND status = ?", batchID, models.BatchStatusSubmitting).
		Updates(map[string]interface{}{
			"status":                models.BatchStatusCompleted,
			"last_successful_index": gorm.Expr("record_count - 1"),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to complete batch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// FailBatch transitions a submitting batch to failed, recording how far the
// sequential submission got before the first rejection
func (r *uploadRepository) FailBatch(batchID string, lastSuccessfulIndex int, reason string) error {
	result := r.db.Model(&models.UploadBatch{}).
		Where("id = ? AND status = ?", batchID, models.BatchStatusSubmitting).
		Updates(map[string]interface{}{
			"status":                models.BatchStatusFailed,
			"last_successful_index": lastSuccessfulIndex,
			"failure_message":       reason,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to fail batch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBatchNotFound
	}
	return nil
}
