package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment is a brokerage position as served by the upstream finance API.
type Investment struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Symbol      string          `json:"symbol"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostBasis   decimal.Decimal `json:"cost_basis"`
	Currency    string          `json:"currency"`
	LastPrice   decimal.Decimal `json:"last_price"`
	LastUpdated time.Time       `json:"last_updated"`
}

// MarketValue returns quantity x last price. It is computed fresh on every
// call; the stored position total is never trusted because last_price moves.
func (i *Investment) MarketValue() decimal.Decimal {
	return i.LastPrice.Mul(i.Quantity)
}

// InvestmentPerformance is the upstream performance breakdown for one
// position. Percentages are computed server-side and displayed verbatim.
type InvestmentPerformance struct {
	Symbol                string          `json:"symbol"`
	CurrentPrice          decimal.Decimal `json:"current_price"`
	TotalValue            decimal.Decimal `json:"total_value"`
	TotalReturn           decimal.Decimal `json:"total_return"`
	TotalReturnPercentage decimal.Decimal `json:"total_return_percentage"`
	YTDReturnPercentage   decimal.Decimal `json:"ytd_return_percentage"`
	MTDReturnPercentage   decimal.Decimal `json:"mtd_return_percentage"`
	IsVolatile            bool            `json:"is_volatile"`
}
