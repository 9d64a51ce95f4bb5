package dto

import (
	"ledgerview/internal/models"
)

// CreateTransactionRequest is the manual-entry form payload. Amount travels
// as a string so fractional cents survive decoding intact; it must parse to
// a non-zero decimal. Category and currency are optional and default
// server-side.
type CreateTransactionRequest struct {
	Amount      string `json:"amount" validate:"required,nonzero_amount"`
	Description string `json:"description" validate:"required,max=255"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Currency    string `json:"currency" validate:"omitempty,currency_code"`
}

// TransactionResponse mirrors the upstream transaction entity
type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

// TransactionListResponse lists an account's transactions
type TransactionListResponse struct {
	AccountID    int64                `json:"account_id"`
	Transactions []models.Transaction `json:"transactions"`
}
