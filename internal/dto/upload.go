package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgerview/internal/models"
	"ledgerview/internal/services"
)

// UploadRecordView is one candidate row as shown in previews and batch
// detail responses.
type UploadRecordView struct {
	RowIndex    int             `json:"row_index"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	Error       string          `json:"error,omitempty"`
}

// PreviewResponse is returned after a CSV passes validation. The client
// confirms by POSTing to the submit endpoint with the batch id.
type PreviewResponse struct {
	BatchID     string             `json:"batch_id"`
	FileName    string             `json:"file_name"`
	AccountID   int64              `json:"account_id"`
	RecordCount int                `json:"record_count"`
	Preview     []UploadRecordView `json:"preview"`
}

// SubmitResponse is the structured outcome of a batch submission: which
// rows committed, which row failed, and which were never sent.
type SubmitResponse struct {
	BatchID          string `json:"batch_id"`
	Status           string `json:"status"`
	RecordCount      int    `json:"record_count"`
	CommittedIndices []int  `json:"committed_indices"`
	FailedIndex      *int   `json:"failed_index,omitempty"`
	FailureReason    string `json:"failure_reason,omitempty"`
	SkippedIndices   []int  `json:"skipped_indices,omitempty"`
	// Refresh names the data sets the client should refetch instead of
	// reloading everything.
	Refresh []string `json:"refresh"`
}

// BatchSummary is one row of the batch listing
type BatchSummary struct {
	BatchID             string     `json:"batch_id"`
	AccountID           int64      `json:"account_id"`
	FileName            string     `json:"file_name"`
	Status              string     `json:"status"`
	RecordCount         int        `json:"record_count"`
	LastSuccessfulIndex int        `json:"last_successful_index"`
	FailureMessage      string     `json:"failure_message,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	SubmittedAt         *time.Time `json:"submitted_at,omitempty"`
}

// BatchDetailResponse is a batch with its full per-record outcome
type BatchDetailResponse struct {
	BatchSummary
	Records []UploadRecordView `json:"records"`
}

// ListBatchesResponse lists recent upload batches
type ListBatchesResponse struct {
	Batches []BatchSummary `json:"batches"`
}

// NewUploadRecordView maps a ledger record into its API shape
func NewUploadRecordView(record models.UploadRecord) UploadRecordView {
	return UploadRecordView{
		RowIndex:    record.RowIndex,
		Amount:      record.Amount,
		Description: record.Description,
		Category:    record.Category,
		Currency:    record.Currency,
		Status:      record.Status,
		Error:       record.Error,
	}
}

// NewBatchSummary maps a ledger batch into its API shape
func NewBatchSummary(batch *models.UploadBatch) BatchSummary {
	return BatchSummary{
		BatchID:             batch.ID,
		AccountID:           batch.AccountID,
		FileName:            batch.FileName,
		Status:              batch.Status,
		RecordCount:         batch.RecordCount,
		LastSuccessfulIndex: batch.LastSuccessfulIndex,
		FailureMessage:      batch.FailureMessage,
		CreatedAt:           batch.CreatedAt,
		SubmittedAt:         batch.SubmittedAt,
	}
}

// NewPreviewResponse maps a preview result into its API shape
func NewPreviewResponse(result *services.PreviewResult) PreviewResponse {
	preview := make([]UploadRecordView, 0, len(result.Preview))
	for _, record := range result.Preview {
		preview = append(preview, NewUploadRecordView(record))
	}

	return PreviewResponse{
		BatchID:     result.Batch.ID,
		FileName:    result.Batch.FileName,
		AccountID:   result.Batch.AccountID,
		RecordCount: result.Batch.RecordCount,
		Preview:     preview,
	}
}

// NewSubmitResponse maps a submission result into its API shape
func NewSubmitResponse(result *services.SubmissionResult) SubmitResponse {
	response := SubmitResponse{
		BatchID:          result.Batch.ID,
		RecordCount:      result.Batch.RecordCount,
		CommittedIndices: result.CommittedIndices,
		SkippedIndices:   result.SkippedIndices,
		FailureReason:    result.FailureReason,
	}

	if result.FailedIndex >= 0 {
		failed := result.FailedIndex
		response.FailedIndex = &failed
		response.Status = models.BatchStatusFailed
	} else {
		response.Status = models.BatchStatusCompleted
	}

	if response.CommittedIndices == nil {
		response.CommittedIndices = []int{}
	}

	// Any committed row changes the account balance and the dashboard
	// totals; the transaction list only changes when something committed.
	if len(response.CommittedIndices) > 0 {
		response.Refresh = []string{"dashboard", "transactions"}
	} else {
		response.Refresh = []string{}
	}

	return response
}
