// Command backendstub serves a fabricated finance backend for local gateway
// development. It implements the endpoints the gateway consumes with
// in-memory data so the dashboard and the upload pipeline can be exercised
// without a real backend. Data resets on restart.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"ledgerview/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type stub struct {
	mu           sync.Mutex
	accounts     []models.BankAccount
	investments  []models.Investment
	programs     []models.LoyaltyProgram
	transactions map[int64][]models.Transaction
	nextTxnID    int64
}

func main() {
	port := 9000
	if raw := os.Getenv("STUB_PORT"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			port = parsed
		}
	}

	s := newStub()

	e := echo.New()
	e.HideBanner = true

	e.GET("/bank-accounts/", s.listAccounts)
	e.GET("/bank-accounts/:id/transactions/", s.listTransactions)
	e.GET("/bank-accounts/:id/monthly-spending/", s.monthlySpending)
	e.POST("/bank-accounts/:id/transactions/", s.createTransaction)
	e.GET("/investments/", s.listInvestments)
	e.GET("/investments/:id/performance/", s.performance)
	e.GET("/loyalty/", s.listPrograms)
	e.GET("/loyalty/summary/", s.loyaltySummary)
	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)

	slog.Info("backend stub listening", "port", port,
		"accounts", len(s.accounts),
		"investments", len(s.investments),
		"programs", len(s.programs))
	if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
		slog.Error("stub stopped", "error", err)
		os.Exit(1)
	}
}

func newStub() *stub {
	s := &stub{
		transactions: make(map[int64][]models.Transaction),
		nextTxnID:    1000,
	}

	now := time.Now().UTC()

	for i := int64(1); i <= 3; i++ {
		s.accounts = append(s.accounts, models.BankAccount{
			ID:          i,
			UserID:      1,
			AccountName: gofakeit.Company() + " " + gofakeit.RandomString([]string{"Checking", "Savings"}),
			AccountType: gofakeit.RandomString([]string{"checking", "savings"}),
			Institution: gofakeit.Company(),
			Country:     gofakeit.CountryAbr(),
			Currency:    gofakeit.RandomString([]string{"USD", "EUR", "GBP"}),
			Balance:     decimal.NewFromFloat(gofakeit.Price(100, 25000)),
			LastUpdated: now.Add(-time.Duration(i) * time.Hour),
		})
	}

	for i := int64(1); i <= 4; i++ {
		s.investments = append(s.investments, models.Investment{
			ID:          10 + i,
			UserID:      1,
			Symbol:      gofakeit.RandomString([]string{"VTI", "VXUS", "BND", "QQQ", "ARKK"}),
			Quantity:    decimal.NewFromFloat(gofakeit.Price(1, 80)),
			CostBasis:   decimal.NewFromFloat(gofakeit.Price(500, 10000)),
			Currency:    "USD",
			LastPrice:   decimal.NewFromFloat(gofakeit.Price(20, 500)),
			LastUpdated: now,
		})
	}

	for i := int64(1); i <= 2; i++ {
		points := decimal.NewFromFloat(gofakeit.Price(1000, 90000))
		s.programs = append(s.programs, models.LoyaltyProgram{
			ID:            20 + i,
			UserID:        1,
			ProgramName:   gofakeit.Company() + " Rewards",
			ProgramType:   gofakeit.RandomString([]string{models.LoyaltyTypeAirline, models.LoyaltyTypeHotel, models.LoyaltyTypeBank}),
			PointsBalance: points,
			CurrencyValue: points.Mul(decimal.NewFromFloat(0.012)).Round(2),
			LastUpdated:   now,
		})
	}

	for _, account := range s.accounts {
		for j := 0; j < 8; j++ {
			s.transactions[account.ID] = append(s.transactions[account.ID], models.Transaction{
				ID:          s.nextTxnID,
				AccountID:   account.ID,
				Amount:      decimal.NewFromFloat(-gofakeit.Price(5, 300)),
				Currency:    account.Currency,
				Description: gofakeit.ProductName(),
				Category:    gofakeit.RandomString(models.Categories),
				Timestamp:   now.AddDate(0, 0, -j*4),
			})
			s.nextTxnID++
		}
	}

	return s
}

func (s *stub) listAccounts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.accounts)
}

func (s *stub) listInvestments(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.investments)
}

func (s *stub) listPrograms(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.programs)
}

func (s *stub) listTransactions(c echo.Context) error {
	accountID, err := accountParam(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	txns := s.transactions[accountID]
	if txns == nil {
		txns = []models.Transaction{}
	}
	return c.JSON(http.StatusOK, txns)
}

func (s *stub) monthlySpending(c echo.Context) error {
	accountID, err := accountParam(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().AddDate(0, 0, -30)
	totals := make(map[string]decimal.Decimal)
	for _, txn := range s.transactions[accountID] {
		if !txn.IsDebit() || txn.Timestamp.Before(cutoff) {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount.Abs())
	}
	return c.JSON(http.StatusOK, totals)
}

func (s *stub) createTransaction(c echo.Context) error {
	accountID, err := accountParam(c)
	if err != nil {
		return err
	}

	var payload models.NewTransaction
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "malformed payload"})
	}
	if payload.Amount.IsZero() {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "amount cannot be zero"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	txn := models.Transaction{
		ID:          s.nextTxnID,
		AccountID:   accountID,
		Amount:      payload.Amount,
		Currency:    payload.Currency,
		Description: payload.Description,
		Category:    payload.Category,
		Timestamp:   time.Now().UTC(),
	}
	s.nextTxnID++
	s.transactions[accountID] = append(s.transactions[accountID], txn)

	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Balance = s.accounts[i].Balance.Add(payload.Amount)
			s.accounts[i].LastUpdated = txn.Timestamp
		}
	}

	return c.JSON(http.StatusCreated, txn)
}

func (s *stub) performance(c echo.Context) error {
	investmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "investment not found"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, investment := range s.investments {
		if investment.ID != investmentID {
			continue
		}
		value := investment.MarketValue()
		totalReturn := value.Sub(investment.CostBasis)
		pct := decimal.Zero
		if !investment.CostBasis.IsZero() {
			pct = totalReturn.Div(investment.CostBasis).Mul(decimal.NewFromInt(100)).Round(2)
		}
		return c.JSON(http.StatusOK, models.InvestmentPerformance{
			Symbol:                investment.Symbol,
			CurrentPrice:          investment.LastPrice,
			TotalValue:            value,
			TotalReturn:           totalReturn,
			TotalReturnPercentage: pct,
			YTDReturnPercentage:   decimal.NewFromFloat(gofakeit.Float64Range(-20, 30)).Round(2),
			MTDReturnPercentage:   decimal.NewFromFloat(gofakeit.Float64Range(-8, 8)).Round(2),
			IsVolatile:            gofakeit.Bool(),
		})
	}
	return c.JSON(http.StatusNotFound, map[string]string{"detail": "investment not found"})
}

func (s *stub) loyaltySummary(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := models.LoyaltySummary{
		TotalValue:      decimal.Zero,
		ByType:          make(map[string]models.LoyaltyTypeSummary),
		Recommendations: []models.LoyaltyRecommendation{},
	}
	for _, program := range s.programs {
		summary.TotalValue = summary.TotalValue.Add(program.CurrencyValue)
		entry := summary.ByType[program.ProgramType]
		entry.Value = entry.Value.Add(program.CurrencyValue)
		entry.Points = entry.Points.Add(program.PointsBalance)
		summary.ByType[program.ProgramType] = entry

		summary.Recommendations = append(summary.Recommendations, models.LoyaltyRecommendation{
			Program: program.ProgramName,
			Message: "Redeem before points devalue",
		})
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *stub) login(c echo.Context) error {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&payload); err != nil || payload.Email == "" || payload.Password == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
	}

	// Any credentials pass; the token is opaque and never verified here.
	return c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: "stub-" + gofakeit.UUID(),
		TokenType:   "bearer",
		ExpiresIn:   1800,
	})
}

func (s *stub) register(c echo.Context) error {
	var payload struct {
		Email        string `json:"email"`
		Password     string `json:"password"`
		BaseCurrency string `json:"base_currency"`
	}
	if err := c.Bind(&payload); err != nil || payload.Email == "" {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "email is required"})
	}
	if payload.BaseCurrency == "" {
		payload.BaseCurrency = "USD"
	}

	return c.JSON(http.StatusCreated, models.User{
		ID:           int64(gofakeit.Number(2, 9999)),
		Email:        payload.Email,
		BaseCurrency: payload.BaseCurrency,
	})
}

func accountParam(c echo.Context) (int64, error) {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || accountID <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, map[string]string{"detail": "account not found"})
	}
	return accountID, nil
}
