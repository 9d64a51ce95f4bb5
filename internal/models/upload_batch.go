package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Upload batch states. A batch is persisted once its file has parsed and
// validated; parse or validation failure rejects the upload before any
// ledger row exists.
const (
	BatchStatusPreviewed  = "previewed"
	BatchStatusSubmitting = "submitting"
	BatchStatusCompleted  = "completed"
	BatchStatusFailed     = "failed"
)

// Upload record statuses. Records already committed before a mid-batch
// failure stay committed upstream; the remainder is marked skipped so the
// partial state is diagnosable.
const (
	RecordStatusPending   = "pending"
	RecordStatusCommitted = "committed"
	RecordStatusFailed    = "failed"
	RecordStatusSkipped   = "skipped"
)

var (
	ErrInvalidBatchStatus  = errors.New("invalid upload batch status")
	ErrInvalidRecordStatus = errors.New("invalid upload record status")
)

// UploadBatch is one confirmed CSV upload tracked by the gateway's ledger.
// LastSuccessfulIndex is -1 until the first record commits.
type UploadBatch struct {
	ID                  string         `gorm:"type:uuid;primary_key" json:"id"`
	AccountID           int64          `gorm:"not null;index" json:"account_id"`
	FileName            string         `gorm:"type:varchar(255);not null" json:"file_name"`
	Status              string         `gorm:"type:varchar(20);not null;index" json:"status"`
	RecordCount         int            `gorm:"not null" json:"record_count"`
	LastSuccessfulIndex int            `gorm:"not null;default:-1" json:"last_successful_index"`
	FailureMessage      string         `gorm:"type:text" json:"failure_message,omitempty"`
	CreatedAt           time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null" json:"updated_at"`
	SubmittedAt         *time.Time     `json:"submitted_at,omitempty"`
	Records             []UploadRecord `gorm:"foreignKey:BatchID" json:"records,omitempty"`
}

// UploadRecord is one CSV row of a batch, in file order.
type UploadRecord struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	BatchID     string          `gorm:"type:uuid;not null;index" json:"batch_id"`
	RowIndex    int             `gorm:"not null" json:"row_index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Currency    string          `gorm:"type:varchar(10);not null" json:"currency"`
	Status      string          `gorm:"type:varchar(20);not null" json:"status"`
	Error       string          `gorm:"type:text" json:"error,omitempty"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for UploadBatch.
func (b *UploadBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = BatchStatusPreviewed
	}
	if b.LastSuccessfulIndex == 0 && b.Status == BatchStatusPreviewed {
		b.LastSuccessfulIndex = -1
	}
	return b.Validate()
}

// BeforeCreate hook for UploadRecord.
func (r *UploadRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = RecordStatusPending
	}
	if !IsValidRecordStatus(r.Status) {
		return ErrInvalidRecordStatus
	}
	return nil
}

// Validate checks batch invariants.
func (b *UploadBatch) Validate() error {
	if !IsValidBatchStatus(b.Status) {
		return ErrInvalidBatchStatus
	}
	if b.RecordCount < 0 {
		return errors.New("record count cannot be negative")
	}
	return nil
}

// IsTerminal reports whether the batch will never be submitted again.
func (b *UploadBatch) IsTerminal() bool {
	return b.Status == BatchStatusCompleted || b.Status == BatchStatusFailed
}

// TableName returns the table name for UploadBatch.
func (b *UploadBatch) TableName() string {
	return "upload_batches"
}

// TableName returns the table name for UploadRecord.
func (r *UploadRecord) TableName() string {
	return "upload_records"
}

// IsValidBatchStatus checks a batch status value.
func IsValidBatchStatus(status string) bool {
	switch status {
	case BatchStatusPreviewed, BatchStatusSubmitting, BatchStatusCompleted, BatchStatusFailed:
		return true
	default:
		return false
	}
}

// IsValidRecordStatus checks a record status value.
func IsValidRecordStatus(status string) bool {
	switch status {
	case RecordStatusPending, RecordStatusCommitted, RecordStatusFailed, RecordStatusSkipped:
		return true
	default:
		return false
	}
}
