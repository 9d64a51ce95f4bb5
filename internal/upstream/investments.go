package upstream

import (
	"context"
	"fmt"

	"ledgerview/internal/models"
)

// Investments fetches the caller's brokerage positions.
func (c *Client) Investments(ctx context.Context) ([]models.Investment, error) {
	var investments []models.Investment
	if err := c.get(ctx, "/investments/", &investments); err != nil {
		return nil, err
	}
	return investments, nil
}

// InvestmentPerformance fetches the server-computed performance breakdown
// for one position. Distinct positions have no ordering dependency, so
// callers may fan these out concurrently.
func (c *Client) InvestmentPerformance(ctx context.Context, investmentID int64) (*models.InvestmentPerformance, error) {
	path := fmt.Sprintf("/investments/%d/performance/", investmentID)
	var perf models.InvestmentPerformance
	if err := c.get(ctx, path, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}
