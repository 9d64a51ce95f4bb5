package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a bank account as served by the upstream finance API.
// Balance is always in the account's own currency; the gateway never
// converts it.
type BankAccount struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	AccountName string          `json:"account_name"`
	AccountType string          `json:"account_type"`
	Institution string          `json:"institution,omitempty"`
	Country     string          `json:"country,omitempty"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"last_updated"`
}
