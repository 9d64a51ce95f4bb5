package services

import (
	"context"
	"io"
	"time"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
)

// OverviewQuery carries the user-selected shaping of the dashboard table.
type OverviewQuery struct {
	TypeFilter   string // bank | investment | loyalty | all
	SortField    string // name | type | balance | updated, empty for source order
	SortOrder    string // asc | desc
	BaseCurrency string // label override for loyalty rows and totals
}

// Overview is the assembled dashboard view: the unified row set after
// filtering and sorting, plus the per-category totals.
type Overview struct {
	Rows   []models.UnifiedRow   `json:"rows"`
	Totals models.OverviewTotals `json:"totals"`
}

// OverviewServiceInterface builds the unified dashboard table from the three
// backend collections
type OverviewServiceInterface interface {
	BuildOverview(ctx context.Context, query OverviewQuery) (*Overview, error)
}

// PreviewResult is what the client confirms before a batch is submitted.
type PreviewResult struct {
	Batch   *models.UploadBatch
	Preview []models.UploadRecord
}

// SubmissionResult is the structured outcome of a sequential batch
// submission: which rows committed, which row failed, and which rows were
// never sent.
type SubmissionResult struct {
	Batch            *models.UploadBatch
	CommittedIndices []int
	FailedIndex      int // -1 when no row failed
	FailureReason    string
	SkippedIndices   []int
}

// IngestServiceInterface is the transaction ingestion pipeline: manual
// single-entry creation, CSV parse+validate+preview, and ordered batch
// submission.
type IngestServiceInterface interface {
	CreateManual(ctx context.Context, accountID int64, txn models.NewTransaction) (*models.Transaction, error)
	PreviewUpload(ctx context.Context, accountID int64, fileName string, file io.Reader) (*PreviewResult, error)
	SubmitBatch(ctx context.Context, batchID string) (*SubmissionResult, error)
	GetBatch(batchID string) (*models.UploadBatch, error)
	ListBatches(accountID int64, limit int) ([]models.UploadBatch, error)
}

// PerformanceServiceInterface fetches per-investment performance from the
// backend, fanning out concurrently across investments
type PerformanceServiceInterface interface {
	AllPerformance(ctx context.Context) ([]models.InvestmentPerformance, error)
	Performance(ctx context.Context, investmentID int64) (*models.InvestmentPerformance, error)
}

// CategorySpendingEntry is one category's spend over the backend's
// last-30-day window, largest first.
type CategorySpendingEntry struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ActivityServiceInterface exposes per-account activity and loyalty
// analytics from the backend
type ActivityServiceInterface interface {
	AccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error)
	MonthlySpending(ctx context.Context, accountID int64) ([]CategorySpendingEntry, error)
	LoyaltySummary(ctx context.Context) (*models.LoyaltySummary, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
