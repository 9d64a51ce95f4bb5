package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row type tags for the unified dashboard table.
const (
	RowTypeBank       = "bank"
	RowTypeInvestment = "investment"
	RowTypeLoyalty    = "loyalty"
)

// IsValidRowType reports whether t is one of the unified row type tags.
func IsValidRowType(t string) bool {
	switch t {
	case RowTypeBank, RowTypeInvestment, RowTypeLoyalty:
		return true
	default:
		return false
	}
}

// UnifiedRow is one line of the dashboard table, derived per request and
// never persisted. SourceID refers back to the originating entity so a
// client can route a bank row click to the uploader for that account.
type UnifiedRow struct {
	Type        string          `json:"type"`
	SourceID    int64           `json:"source_id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Currency    string          `json:"currency"`
	LastUpdated time.Time       `json:"last_updated"`
}

// OverviewTotals carries the per-category and grand totals for the
// dashboard header cards. Bank and investment totals sum native-currency
// values without conversion; the loyalty total is upstream-valued in the
// base currency already.
type OverviewTotals struct {
	BankBalance     decimal.Decimal `json:"bank_balance"`
	BankCount       int             `json:"bank_count"`
	InvestmentValue decimal.Decimal `json:"investment_value"`
	InvestmentCount int             `json:"investment_count"`
	LoyaltyValue    decimal.Decimal `json:"loyalty_value"`
	LoyaltyCount    int             `json:"loyalty_count"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	BaseCurrency    string          `json:"base_currency"`
}
