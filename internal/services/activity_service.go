package services

import (
	"context"
	"fmt"
	"sort"

	"ledgerview/internal/models"
	"ledgerview/internal/upstream"
)

type activityService struct {
	backend upstream.API
}

func NewActivityService(backend upstream.API) ActivityServiceInterface {
	return &activityService{
		backend: backend,
	}
}

func (s *activityService) AccountTransactions(ctx context.Context, accountID int64) ([]models.Transaction, error) {
	transactions, err := s.backend.AccountTransactions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for account %d: %w", accountID, err)
	}
	return transactions, nil
}

// MonthlySpending returns the backend's category-keyed last-30-day spending
// map as an ordered list, largest spend first. Map iteration order is
// random, so the sort keeps the breakdown stable between renders.
func (s *activityService) MonthlySpending(ctx context.Context, accountID int64) ([]CategorySpendingEntry, error) {
	spending, err := s.backend.MonthlySpending(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch monthly spending for account %d: %w", accountID, err)
	}

	entries := make([]CategorySpendingEntry, 0, len(spending))
	for category, total := range spending {
		entries = append(entries, CategorySpendingEntry{Category: category, Total: total})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Total.Equal(entries[j].Total) {
			return entries[i].Total.GreaterThan(entries[j].Total)
		}
		return entries[i].Category < entries[j].Category
	})

	return entries, nil
}

func (s *activityService) LoyaltySummary(ctx context.Context) (*models.LoyaltySummary, error) {
	summary, err := s.backend.LoyaltySummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loyalty summary: %w", err)
	}
	return summary, nil
}
