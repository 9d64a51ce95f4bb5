package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryGeneral is the default category for manual entries.
const CategoryGeneral = "General"

// CategoryOther is the catch-all bucket for analytics grouping.
const CategoryOther = "Other"

// Categories is the fixed transaction category set. The set is open-ended:
// unknown categories are stored verbatim and only grouped under Other for
// analytics display.
var Categories = []string{
	CategoryGeneral,
	"Food",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	CategoryOther,
}

// IsKnownCategory reports whether category is one of the enumerated set.
func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeCategory maps an unknown category to Other for grouping purposes.
func NormalizeCategory(category string) string {
	if IsKnownCategory(category) {
		return category
	}
	return CategoryOther
}

// Transaction is a bank transaction as served by the upstream finance API.
// Amount is signed: negative means a debit.
type Transaction struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Timestamp   time.Time       `json:"timestamp"`
}

// IsDebit reports whether the transaction reduces the account balance.
func (t *Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// NewTransaction is the creation payload sent to the upstream API. The
// account id travels both in the URL and the body, mirroring the upstream
// contract.
type NewTransaction struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Currency    string          `json:"currency"`
	AccountID   int64           `json:"account_id"`
}
