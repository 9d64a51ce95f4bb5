package services

import (
	"context"
	"sync"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
)

// fakeBackend is a scripted stand-in for the finance backend. Tests set the
// collections it returns and inspect the create calls it received.
type fakeBackend struct {
	mu sync.Mutex

	accounts    []models.BankAccount
	investments []models.Investment
	programs    []models.LoyaltyProgram

	transactions map[int64][]models.Transaction
	spending     map[string]decimal.Decimal
	summary      *models.LoyaltySummary
	performance  map[int64]*models.InvestmentPerformance

	accountsErr    error
	investmentsErr error
	programsErr    error

	// createErrAt fails the Nth create call (zero-based); -1 never fails.
	createErrAt  int
	createErr    error
	createCalls  []models.NewTransaction
	nextTxnID    int64
	performanceC int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		transactions: make(map[int64][]models.Transaction),
		performance:  make(map[int64]*models.InvestmentPerformance),
		createErrAt:  -1,
		nextTxnID:    1000,
	}
}

func (f *fakeBackend) BankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeBackend) AccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	return f.transactions[accountID], nil
}

func (f *fakeBackend) MonthlySpending(ctx context.Context, accountID int64) (map[string]decimal.Decimal, error) {
	return f.spending, nil
}

func (f *fakeBackend) CreateTransaction(ctx context.Context, accountID int64, txn models.NewTransaction) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErrAt >= 0 && len(f.createCalls) == f.createErrAt {
		return nil, f.createErr
	}

	f.createCalls = append(f.createCalls, txn)
	f.nextTxnID++
	created := models.Transaction{
		ID:          f.nextTxnID,
		AccountID:   accountID,
		Amount:      txn.Amount,
		Description: txn.Description,
		Category:    txn.Category,
		Currency:    txn.Currency,
	}
	f.transactions[accountID] = append(f.transactions[accountID], created)
	return &created, nil
}

func (f *fakeBackend) Investments(ctx context.Context) ([]models.Investment, error) {
	return f.investments, f.investmentsErr
}

func (f *fakeBackend) InvestmentPerformance(ctx context.Context, investmentID int64) (*models.InvestmentPerformance, error) {
	f.mu.Lock()
	f.performanceC++
	f.mu.Unlock()

	perf, ok := f.performance[investmentID]
	if !ok {
		return nil, &notFoundError{}
	}
	return perf, nil
}

func (f *fakeBackend) LoyaltyPrograms(ctx context.Context) ([]models.LoyaltyProgram, error) {
	return f.programs, f.programsErr
}

func (f *fakeBackend) LoyaltySummary(ctx context.Context) (*models.LoyaltySummary, error) {
	return f.summary, nil
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	return &models.TokenResponse{AccessToken: "token", TokenType: "bearer"}, nil
}

func (f *fakeBackend) Register(ctx context.Context, email, password, baseCurrency string) (*models.User, error) {
	return &models.User{ID: 1, Email: email, BaseCurrency: baseCurrency}, nil
}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "investment not found" }
