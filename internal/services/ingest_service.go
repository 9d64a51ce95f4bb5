package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"ledgerview/internal/ledger"
	"ledgerview/internal/models"
	"ledgerview/internal/upstream"
)

var (
	ErrZeroAmount       = errors.New("transaction amount cannot be zero")
	ErrEmptyDescription = errors.New("transaction description is required")
)

type ingestService struct {
	backend         upstream.API
	uploads         ledger.UploadRepositoryInterface
	defaultCurrency string
	previewRows     int
	metrics         MetricsRecorderInterface
}

func NewIngestService(
	backend upstream.API,
	uploads ledger.UploadRepositoryInterface,
	defaultCurrency string,
	previewRows int,
	metrics MetricsRecorderInterface,
) IngestServiceInterface {
	return &ingestService{
		backend:         backend,
		uploads:         uploads,
		defaultCurrency: defaultCurrency,
		previewRows:     previewRows,
		metrics:         metrics,
	}
}

// CreateManual validates and submits a single form-entered transaction.
// Category and currency default when omitted; amount must be non-zero.
func (s *ingestService) CreateManual(ctx context.Context, accountID int64, txn models.NewTransaction) (*models.Transaction, error) {
	if txn.Amount.IsZero() {
		return nil, ErrZeroAmount
	}
	if strings.TrimSpace(txn.Description) == "" {
		return nil, ErrEmptyDescription
	}

	if txn.Category == "" {
		txn.Category = models.CategoryGeneral
	}
	if txn.Currency == "" {
		txn.Currency = s.defaultCurrency
	}
	txn.Currency = strings.ToUpper(txn.Currency)
	txn.AccountID = accountID

	created, err := s.backend.CreateTransaction(ctx, accountID, txn)
	if err != nil {
		slog.Warn("manual transaction rejected",
			"account_id", accountID,
			"error", err)
		if s.metrics != nil {
			s.metrics.IncrementCounter("ingest.manual", map[string]string{"status": "failed"})
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("ingest.manual", map[string]string{"status": "committed"})
	}

	slog.Info("manual transaction created",
		"account_id", accountID,
		"transaction_id", created.ID,
		"amount", created.Amount.String())

	return created, nil
}

// PreviewUpload parses and validates a CSV file, persists the candidate
// batch to the upload ledger, and returns the leading rows for the user to
// confirm. Validation is all-or-nothing: any invalid row rejects the file
// and nothing is persisted.
func (s *ingestService) PreviewUpload(ctx context.Context, accountID int64, fileName string, file io.Reader) (*PreviewResult, error) {
	if strings.ToLower(filepath.Ext(fileName)) != ".csv" {
		return nil, ErrNotCSV
	}

	records, err := parseCSV(file)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementCounter("ingest.upload", map[string]string{"status": "rejected"})
		}
		return nil, err
	}

	batch := &models.UploadBatch{
		AccountID:   accountID,
		FileName:    filepath.Base(fileName),
		Status:      models.BatchStatusPreviewed,
		RecordCount: len(records),
		Records:     records,
	}

	if err := s.uploads.CreateBatch(batch); err != nil {
		return nil, fmt.Errorf("failed to persist upload batch: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("ingest.upload", map[string]string{"status": "previewed"})
		s.metrics.RecordGauge("ingest.batch_size", float64(len(records)), nil)
	}

	slog.Info("upload batch previewed",
		"batch_id", batch.ID,
		"account_id", accountID,
		"file_name", batch.FileName,
		"record_count", len(records))

	preview := batch.Records
	if s.previewRows > 0 && len(preview) > s.previewRows {
		preview = preview[:s.previewRows]
	}

	return &PreviewResult{Batch: batch, Preview: preview}, nil
}

// SubmitBatch replays a previewed batch against the backend strictly
// sequentially, in file order. Request i+1 is not issued until request i
// has completed, so the backend observes the file's ordering. On the first
// rejection the remaining rows are never sent; rows committed before the
// failure stay committed, and the per-row outcome is recorded in the
// ledger. No request is retried.
func (s *ingestService) SubmitBatch(ctx context.Context, batchID string) (*SubmissionResult, error) {
	batch, err := s.uploads.GetBatchByID(batchID)
	if err != nil {
		return nil, err
	}

	if err := s.uploads.MarkSubmitting(batchID); err != nil {
		return nil, err
	}

	started := time.Now()
	result := &SubmissionResult{
		Batch:       batch,
		FailedIndex: -1,
	}

	for i, record := range batch.Records {
		txn := models.NewTransaction{
			Amount:      record.Amount,
			Description: record.Description,
			Category:    record.Category,
			Currency:    record.Currency,
			AccountID:   batch.AccountID,
		}

		_, err := s.backend.CreateTransaction(ctx, batch.AccountID, txn)
		if err != nil {
			result.FailedIndex = record.RowIndex
			result.FailureReason = submissionFailureReason(err)

			s.recordFailure(batch, i, result)

			if s.metrics != nil {
				s.metrics.IncrementCounter("ingest.batch", map[string]string{"status": "failed"})
				s.metrics.RecordProcessingTime("ingest.submission", time.Since(started))
			}

			slog.Warn("batch submission stopped at first failure",
				"batch_id", batch.ID,
				"failed_index", result.FailedIndex,
				"committed", len(result.CommittedIndices),
				"skipped", len(result.SkippedIndices),
				"reason", result.FailureReason)

			return result, nil
		}

		result.CommittedIndices = append(result.CommittedIndices, record.RowIndex)
		if err := s.uploads.MarkRecordCommitted(batch.ID, record.RowIndex); err != nil {
			slog.Error("failed to record committed row in ledger",
				"batch_id", batch.ID,
				"row_index", record.RowIndex,
				"error", err)
		}
	}

	if err := s.uploads.CompleteBatch(batch.ID); err != nil {
		slog.Error("failed to mark batch completed in ledger",
			"batch_id", batch.ID,
			"error", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCounter("ingest.batch", map[string]string{"status": "completed"})
		s.metrics.RecordProcessingTime("ingest.submission", time.Since(started))
	}

	slog.Info("batch submission completed",
		"batch_id", batch.ID,
		"record_count", batch.RecordCount)

	return result, nil
}

// recordFailure writes the failed row, the never-sent rows, and the batch
// outcome to the ledger
func (s *ingestService) recordFailure(batch *models.UploadBatch, failedPosition int, result *SubmissionResult) {
	failedIndex := batch.Records[failedPosition].RowIndex

	if err := s.uploads.MarkRecordFailed(batch.ID, failedIndex, result.FailureReason); err != nil {
		slog.Error("failed to record failed row in ledger",
			"batch_id", batch.ID,
			"row_index", failedIndex,
			"error", err)
	}

	for _, record := range batch.Records[failedPosition+1:] {
		result.SkippedIndices = append(result.SkippedIndices, record.RowIndex)
	}
	if err := s.uploads.MarkRemainingSkipped(batch.ID, failedIndex+1); err != nil {
		slog.Error("failed to record skipped rows in ledger",
			"batch_id", batch.ID,
			"error", err)
	}

	lastSuccessful := -1
	if n := len(result.CommittedIndices); n > 0 {
		lastSuccessful = result.CommittedIndices[n-1]
	}
	if err := s.uploads.FailBatch(batch.ID, lastSuccessful, result.FailureReason); err != nil {
		slog.Error("failed to mark batch failed in ledger",
			"batch_id", batch.ID,
			"error", err)
	}
}

func submissionFailureReason(err error) string {
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) && statusErr.Detail != "" {
		return statusErr.Detail
	}
	if errors.Is(err, upstream.ErrTimeout) {
		return "backend request timed out"
	}
	if errors.Is(err, upstream.ErrUnavailable) {
		return "backend is unreachable"
	}
	return err.Error()
}

func (s *ingestService) GetBatch(batchID string) (*models.UploadBatch, error) {
	return s.uploads.GetBatchByID(batchID)
}

func (s *ingestService) ListBatches(accountID int64, limit int) ([]models.UploadBatch, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if accountID > 0 {
		return s.uploads.GetBatchesByAccount(accountID, limit)
	}
	return s.uploads.GetRecentBatches(limit)
}
