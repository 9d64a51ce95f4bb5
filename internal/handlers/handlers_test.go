package handlers

import (
	"context"
	"sync"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
)

// stubBackend is a scripted finance backend for handler tests
type stubBackend struct {
	mu sync.Mutex

	accounts    []models.BankAccount
	investments []models.Investment
	programs    []models.LoyaltyProgram
	spending    map[string]decimal.Decimal
	summary     *models.LoyaltySummary
	performance map[int64]*models.InvestmentPerformance

	fetchErr  error
	createErr error
	// createErrAt fails the Nth create call (zero-based); -1 never fails
	createErrAt int
	createCalls []models.NewTransaction

	loginErr error
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		performance: make(map[int64]*models.InvestmentPerformance),
		createErrAt: -1,
	}
}

func (f *stubBackend) BankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return f.accounts, f.fetchErr
}

func (f *stubBackend) AccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return []models.Transaction{}, nil
}

func (f *stubBackend) MonthlySpending(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	return f.spending, f.fetchErr
}

func (f *stubBackend) CreateTransaction(ctx context.Context, accountID int64, txn models.NewTransaction) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErrAt >= 0 && len(f.createCalls) == f.createErrAt {
		return nil, f.createErr
	}
	if f.createErrAt < 0 && f.createErr != nil {
		return nil, f.createErr
	}

	f.createCalls = append(f.createCalls, txn)
	return &models.Transaction{
		ID:          int64(len(f.createCalls)),
		AccountID:   accountID,
		Amount:      txn.Amount,
		Description: txn.Description,
		Category:    txn.Category,
		Currency:    txn.Currency,
	}, nil
}

func (f *stubBackend) Investments(ctx context.Context) ([]models.Investment, error) {
	return f.investments, f.fetchErr
}

func (f *stubBackend) InvestmentPerformance(ctx context.Context, investmentID int64) (*models.InvestmentPerformance, error) {
	perf, ok := f.performance[investmentID]
	if !ok {
		return nil, f.fetchErr
	}
	return perf, nil
}

func (f *stubBackend) LoyaltyPrograms(ctx context.Context) ([]models.LoyaltyProgram, error) {
	return f.programs, f.fetchErr
}

func (f *stubBackend) LoyaltySummary(ctx context.Context) (*models.LoyaltySummary, error) {
	return f.summary, f.fetchErr
}

func (f *stubBackend) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.TokenResponse{AccessToken: "backend-token", TokenType: "bearer", ExpiresIn: 1800}, nil
}

func (f *stubBackend) Register(ctx context.Context, email, password, baseCurrency string) (*models.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	return &models.User{ID: 42, Email: email, BaseCurrency: baseCurrency}, nil
}
