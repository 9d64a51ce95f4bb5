package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ledgerview/internal/models"
	"ledgerview/internal/upstream"
)

type performanceService struct {
	backend upstream.API
	metrics MetricsRecorderInterface
}

func NewPerformanceService(backend upstream.API, metrics MetricsRecorderInterface) PerformanceServiceInterface {
	return &performanceService{
		backend: backend,
		metrics: metrics,
	}
}

// AllPerformance fetches performance for every investment. The per-investment
// calls fan out concurrently because no ordering dependency exists between
// distinct investments; results come back in the investment list's order.
func (s *performanceService) AllPerformance(ctx context.Context) ([]models.InvestmentPerformance, error) {
	investments, err := s.backend.Investments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch investments: %w", err)
	}

	if len(investments) == 0 {
		return []models.InvestmentPerformance{}, nil
	}

	started := time.Now()

	results := make([]*models.InvestmentPerformance, len(investments))
	errs := make([]error, len(investments))

	var wg sync.WaitGroup
	for i, investment := range investments {
		wg.Add(1)
		go func(i int, investmentID int64) {
			defer wg.Done()
			results[i], errs[i] = s.backend.InvestmentPerformance(ctx, investmentID)
		}(i, investment.ID)
	}
	wg.Wait()

	performance := make([]models.InvestmentPerformance, 0, len(investments))
	for i, result := range results {
		if errs[i] != nil {
			slog.Warn("performance fetch failed for investment",
				"investment_id", investments[i].ID,
				"symbol", investments[i].Symbol,
				"error", errs[i])
			return nil, fmt.Errorf("failed to fetch performance for %s: %w", investments[i].Symbol, errs[i])
		}
		performance = append(performance, *result)
	}

	if s.metrics != nil {
		s.metrics.RecordProcessingTime("performance.fanout", time.Since(started))
	}

	slog.Info("investment performance fetched",
		"investment_count", len(investments),
		"duration_ms", time.Since(started).Milliseconds())

	return performance, nil
}

func (s *performanceService) Performance(ctx context.Context, investmentID int64) (*models.InvestmentPerformance, error) {
	return s.backend.InvestmentPerformance(ctx, investmentID)
}
