package upstream

import (
	"context"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
)

// API is the surface of the finance backend the gateway consumes. Services
// depend on this interface so tests can substitute a scripted backend.
type API interface {
	BankAccounts(ctx context.Context) ([]models.BankAccount, error)
	AccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error)
	MonthlySpending(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error)
	CreateTransaction(ctx context.Context, accountID int64, txn models.NewTransaction) (*models.Transaction, error)
	Investments(ctx context.Context) ([]models.Investment, error)
	InvestmentPerformance(ctx context.Context, investmentID int64) (*models.InvestmentPerformance, error)
	LoyaltyPrograms(ctx context.Context) ([]models.LoyaltyProgram, error)
	LoyaltySummary(ctx context.Context) (*models.LoyaltySummary, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, email, password, baseCurrency string) (*models.User, error)
}

var _ API = (*Client)(nil)
