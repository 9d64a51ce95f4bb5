package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ledgerview/internal/dto"
	"ledgerview/internal/ledger"
	"ledgerview/internal/models"
	"ledgerview/internal/services"
	"ledgerview/internal/upstream"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *ledger.DB
	backend *stubBackend
	handler *TransactionHandler
}

func TestTransactionHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}

func (s *TransactionHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.db = ledger.SetupTestDB(s.T())
	s.backend = newStubBackend()

	activity := services.NewActivityService(s.backend)
	ingest := services.NewIngestService(s.backend, ledger.NewUploadRepository(s.db.DB), "USD", 5, nil)
	s.handler = NewTransactionHandler(activity, ingest)
}

func (s *TransactionHandlerTestSuite) TearDownTest() {
	ledger.CleanupTestDB(s.T(), s.db)
}

func (s *TransactionHandlerTestSuite) newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction() {
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/accounts/1/transactions",
		`{"amount":"-42.10","description":"Grocery store","category":"Food","currency":"USD"}`)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	err := s.handler.CreateTransaction(c)
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.TransactionResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Transaction.Amount.Equal(decimal.NewFromFloat(-42.10)))
	s.Equal(int64(1), response.Transaction.AccountID)

	s.Require().Len(s.backend.createCalls, 1)
	s.Equal("Food", s.backend.createCalls[0].Category)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_Defaults() {
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/accounts/1/transactions",
		`{"amount":"15.00","description":"Refund"}`)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	err := s.handler.CreateTransaction(c)
	s.NoError(err)
	s.Equal(http.StatusCreated, rec.Code)

	s.Require().Len(s.backend.createCalls, 1)
	s.Equal(models.CategoryGeneral, s.backend.createCalls[0].Category)
	s.Equal("USD", s.backend.createCalls[0].Currency)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_ZeroAmount() {
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/accounts/1/transactions",
		`{"amount":"0.00","description":"Nothing"}`)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	// The nonzero_amount tag rejects it before the service runs
	err := s.handler.CreateTransaction(c)
	s.Error(err)
	s.Empty(s.backend.createCalls)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_MissingDescription() {
	c, _ := s.newJSONContext(http.MethodPost, "/api/v1/accounts/1/transactions",
		`{"amount":"10.00"}`)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	err := s.handler.CreateTransaction(c)
	s.Error(err)
	s.Empty(s.backend.createCalls)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_BadAccountID() {
	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/accounts/abc/transactions",
		`{"amount":"10.00","description":"Lunch"}`)
	c.SetParamNames("accountId")
	c.SetParamValues("abc")

	err := s.handler.CreateTransaction(c)
	s.NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("ACCOUNT_002", response.Error.Code)
}

func (s *TransactionHandlerTestSuite) TestCreateTransaction_BackendRejection() {
	s.backend.createErr = &upstream.StatusError{StatusCode: 422, Detail: "Account 1 balance would go negative"}

	c, rec := s.newJSONContext(http.MethodPost, "/api/v1/accounts/1/transactions",
		`{"amount":"-99999.00","description":"Big purchase"}`)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	err := s.handler.CreateTransaction(c)
	s.NoError(err)
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("UPSTREAM_003", response.Error.Code)
	s.Contains(response.Error.Details, "Account 1 balance would go negative")
}

func (s *TransactionHandlerTestSuite) TestGetMonthlySpending() {
	s.backend.spending = map[string]decimal.Decimal{
		"Entertainment": decimal.NewFromFloat(120.00),
		"Food":          decimal.NewFromFloat(450.10),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1/spending", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	err := s.handler.GetMonthlySpending(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var response dto.SpendingResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response.Categories, 2)
	s.Equal("Food", response.Categories[0].Category)
	s.True(response.Categories[0].Total.Equal(decimal.NewFromFloat(450.10)))
}

func (s *TransactionHandlerTestSuite) TestListTransactions() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/1/transactions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	err := s.handler.ListTransactions(c)
	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
}
