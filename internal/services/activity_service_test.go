package services

import (
	"context"
	"testing"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySpending_SortedLargestFirst(t *testing.T) {
	backend := newFakeBackend()
	backend.spending = map[string]decimal.Decimal{
		"Food":          decimal.NewFromFloat(310.40),
		"Entertainment": decimal.NewFromFloat(120.00),
		"Housing":       decimal.NewFromFloat(980.25),
		"Shopping":      decimal.NewFromFloat(450.10),
	}

	service := NewActivityService(backend)

	entries, err := service.MonthlySpending(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "Housing", entries[0].Category)
	assert.Equal(t, "Shopping", entries[1].Category)
	assert.Equal(t, "Food", entries[2].Category)
	assert.Equal(t, "Entertainment", entries[3].Category)
}

func TestMonthlySpending_TiesOrderedByCategory(t *testing.T) {
	backend := newFakeBackend()
	backend.spending = map[string]decimal.Decimal{
		"Utilities": decimal.NewFromFloat(75.00),
		"Food":      decimal.NewFromFloat(75.00),
	}

	service := NewActivityService(backend)

	entries, err := service.MonthlySpending(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Food", entries[0].Category)
	assert.Equal(t, "Utilities", entries[1].Category)
}

func TestAccountTransactions(t *testing.T) {
	backend := newFakeBackend()
	backend.transactions[1] = []models.Transaction{
		{ID: 1, AccountID: 1, Amount: decimal.NewFromFloat(-10.00), Description: "Coffee"},
	}

	service := NewActivityService(backend)

	transactions, err := service.AccountTransactions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Coffee", transactions[0].Description)
}

func TestLoyaltySummary(t *testing.T) {
	backend := newFakeBackend()
	backend.summary = &models.LoyaltySummary{
		TotalValue: decimal.NewFromFloat(412.50),
		ByType: map[string]models.LoyaltyTypeSummary{
			models.LoyaltyTypeAirline: {Value: decimal.NewFromFloat(130.00), Points: decimal.NewFromInt(13000)},
		},
	}

	service := NewActivityService(backend)

	summary, err := service.LoyaltySummary(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromFloat(412.50)))
}
