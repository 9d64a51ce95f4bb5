package upstream

import (
	"context"

	"ledgerview/internal/models"
)

// LoyaltyPrograms fetches the caller's loyalty programs.
func (c *Client) LoyaltyPrograms(ctx context.Context) ([]models.LoyaltyProgram, error) {
	var programs []models.LoyaltyProgram
	if err := c.get(ctx, "/loyalty/", &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// LoyaltySummary fetches the upstream valuation rollup across programs.
func (c *Client) LoyaltySummary(ctx context.Context) (*models.LoyaltySummary, error) {
	var summary models.LoyaltySummary
	if err := c.get(ctx, "/loyalty/summary/", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
