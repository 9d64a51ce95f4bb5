package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotCSV         = errors.New("only .csv files are accepted")
	ErrEmptyFile      = errors.New("no transactions found in file")
	ErrSchemaMismatch = errors.New("csv header is missing required columns")
)

// The four recognized columns. Header matching is case-insensitive and
// ignores surrounding whitespace; extra columns are ignored.
const (
	columnAmount      = "amount"
	columnDescription = "description"
	columnCategory    = "category"
	columnCurrency    = "currency"
)

var requiredColumns = []string{columnAmount, columnDescription, columnCategory, columnCurrency}

// RowError describes one invalid field on one data row. Row numbers are
// zero-based data-row indices, not file line numbers.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// BatchValidationError aggregates every row error found during validation.
// Validation is all-or-nothing: one bad row rejects the whole batch.
type BatchValidationError struct {
	RowErrors []RowError
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("batch rejected: %d invalid rows", len(e.RowErrors))
}

// parseCSV reads the full file, maps the header, and validates every data
// row. It returns the candidate records in file order, or an error if the
// header is malformed or any row fails validation.
func parseCSV(file io.Reader) ([]models.UploadRecord, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var records []models.UploadRecord
	var rowErrors []RowError

	for rowIndex := 0; ; rowIndex++ {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", rowIndex, err)
		}

		record, errs := buildRecord(raw, columns, rowIndex)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}
		records = append(records, record)
	}

	if len(rowErrors) > 0 {
		return nil, &BatchValidationError{RowErrors: rowErrors}
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return records, nil
}

// mapHeader resolves each required column to its position in the file
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if _, taken := columns[normalized]; !taken {
			columns[normalized] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, ErrSchemaMismatch
		}
	}

	return columns, nil
}

func buildRecord(raw []string, columns map[string]int, rowIndex int) (models.UploadRecord, []RowError) {
	var rowErrors []RowError

	field := func(name string) string {
		position := columns[name]
		if position >= len(raw) {
			return ""
		}
		return strings.TrimSpace(raw[position])
	}

	amountText := field(columnAmount)
	description := field(columnDescription)
	category := field(columnCategory)
	currency := field(columnCurrency)

	var amount decimal.Decimal
	switch {
	case amountText == "":
		rowErrors = append(rowErrors, RowError{rowIndex, columnAmount, "amount is required"})
	default:
		parsed, err := decimal.NewFromString(amountText)
		switch {
		case err != nil:
			rowErrors = append(rowErrors, RowError{rowIndex, columnAmount, "amount must be a number"})
		case parsed.IsZero():
			rowErrors = append(rowErrors, RowError{rowIndex, columnAmount, "amount cannot be zero"})
		default:
			amount = parsed
		}
	}

	if description == "" {
		rowErrors = append(rowErrors, RowError{rowIndex, columnDescription, "description is required"})
	}
	if category == "" {
		rowErrors = append(rowErrors, RowError{rowIndex, columnCategory, "category is required"})
	}
	if currency == "" {
		rowErrors = append(rowErrors, RowError{rowIndex, columnCurrency, "currency is required"})
	}

	if len(rowErrors) > 0 {
		return models.UploadRecord{}, rowErrors
	}

	return models.UploadRecord{
		RowIndex:    rowIndex,
		Amount:      amount,
		Description: description,
		Category:    category,
		Currency:    strings.ToUpper(currency),
		Status:      models.RecordStatusPending,
	}, nil
}
