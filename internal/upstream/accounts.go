package upstream

import (
	"context"
	"fmt"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
)

// BankAccounts fetches the caller's bank accounts.
func (c *Client) BankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := c.get(ctx, "/bank-accounts/", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AccountTransactions fetches the transaction history of one account,
// newest first, exactly as the backend orders it.
func (c *Client) AccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	path := fmt.Sprintf("/bank-accounts/%d/transactions/", accountID)
	var transactions []models.Transaction
	if err := c.get(ctx, path, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// MonthlySpending fetches the last-30-day spending-by-category breakdown
// for one account. Values are positive magnitudes computed server-side.
func (c *Client) MonthlySpending(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	path := fmt.Sprintf("/bank-accounts/%d/monthly-spending/", accountID)
	var spending map[string]decimal.Decimal
	if err := c.get(ctx, path, &spending); err != nil {
		return nil, err
	}
	return spending, nil
}

// CreateTransaction posts one new transaction to an account. Callers that
// submit batches must await each call before issuing the next; the backend
// applies balance updates in arrival order.
func (c *Client) CreateTransaction(ctx context.Context, accountID int64, txn models.NewTransaction) (*models.Transaction, error) {
	path := fmt.Sprintf("/bank-accounts/%d/transactions/", accountID)
	var created models.Transaction
	if err := c.post(ctx, path, txn, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
