package ledger

import (
	"ledgerview/internal/models"
)

// UploadRepositoryInterface defines persistence operations for upload batches
type UploadRepositoryInterface interface {
	CreateBatch(batch *models.UploadBatch) error
	GetBatchByID(id string) (*models.UploadBatch, error)
	GetBatchesByAccount(accountID int64, limit int) ([]models.UploadBatch, error)
	GetRecentBatches(limit int) ([]models.UploadBatch, error)
	MarkSubmitting(batchID string) error
	MarkRecordCommitted(batchID string, rowIndex int) error
	MarkRecordFailed(batchID string, rowIndex int, reason string) error
	MarkRemainingSkipped(batchID string, firstSkippedIndex int) error
	CompleteBatch(batchID string) error
	FailBatch(batchID string, lastSuccessfulIndex int, reason string) error
}
