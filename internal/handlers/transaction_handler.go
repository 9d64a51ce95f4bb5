package handlers

import (
	stderrors "errors"
	"net/http"

	"ledgerview/internal/dto"
	"ledgerview/internal/errors"
	"ledgerview/internal/models"
	"ledgerview/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles per-account activity and manual transaction entry
type TransactionHandler struct {
	activity services.ActivityServiceInterface
	ingest   services.IngestServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	activity services.ActivityServiceInterface,
	ingest services.IngestServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		activity: activity,
		ingest:   ingest,
	}
}

// ListTransactions retrieves an account's transaction history
// @Summary List transactions
// @Description Fetch the backend's transaction list for one account
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {object} dto.TransactionListResponse "Account transactions"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Failure 502 {object} errors.ErrorResponse "UPSTREAM_001 - Backend unreachable"
// @Router /accounts/{accountId}/transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	accountID, err := getAccountIDParam(c)
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	transactions, err := h.activity.AccountTransactions(c.Request().Context(), accountID)
	if err != nil {
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		AccountID:    accountID,
		Transactions: transactions,
	})
}

// GetMonthlySpending retrieves an account's spending-by-category breakdown
// @Summary Monthly spending
// @Description Fetch the backend's last-30-day spending totals by category for one account
// @Tags Transactions
// @Security BearerAuth
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {object} dto.SpendingResponse "Spending by category, largest first"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId}/spending [get]
func (h *TransactionHandler) GetMonthlySpending(c echo.Context) error {
	accountID, err := getAccountIDParam(c)
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	categories, err := h.activity.MonthlySpending(c.Request().Context(), accountID)
	if err != nil {
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, dto.SpendingResponse{
		AccountID:  accountID,
		Categories: categories,
	})
}

// CreateTransaction submits one manually entered transaction
// @Summary Create transaction
// @Description Validate and submit a single manually entered transaction to the backend
// @Tags Transactions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param accountId path int true "Account ID"
// @Param request body dto.CreateTransactionRequest true "Transaction fields"
// @Success 201 {object} dto.TransactionResponse "Created transaction"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - Zero or malformed amount"
// @Failure 422 {object} errors.ErrorResponse "UPSTREAM_003 - Backend rejected the transaction"
// @Router /accounts/{accountId}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	accountID, err := getAccountIDParam(c)
	if err != nil {
		return SendError(c, errors.AccountInvalidID)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("amount must be a number"))
	}

	created, err := h.ingest.CreateManual(c.Request().Context(), accountID, models.NewTransaction{
		Amount:      amount,
		Description: req.Description,
		Category:    req.Category,
		Currency:    req.Currency,
	})
	if err != nil {
		if stderrors.Is(err, services.ErrZeroAmount) {
			return SendError(c, errors.ValidationZeroAmount)
		}
		if stderrors.Is(err, services.ErrEmptyDescription) {
			return SendError(c, errors.ValidationRequiredField, errors.WithDetails("description is required"))
		}
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.TransactionResponse{Transaction: *created})
}
