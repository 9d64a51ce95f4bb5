package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loyalty program types form a small open set; unrecognized values are
// passed through untouched.
const (
	LoyaltyTypeAirline = "airline"
	LoyaltyTypeHotel   = "hotel"
	LoyaltyTypeBank    = "bank"
)

// LoyaltyProgram is a points program as served by the upstream finance API.
// CurrencyValue is already expressed in the dashboard's base currency; unlike
// bank and investment rows no further conversion is applied, which is an
// asymmetry inherited from the upstream valuation model.
type LoyaltyProgram struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	ProgramName   string          `json:"program_name"`
	ProgramType   string          `json:"program_type"`
	PointsBalance decimal.Decimal `json:"points_balance"`
	CurrencyValue decimal.Decimal `json:"currency_value"`
	LastUpdated   time.Time       `json:"last_updated"`
}

// LoyaltySummary is the upstream valuation rollup across programs.
type LoyaltySummary struct {
	TotalValue      decimal.Decimal               `json:"total_value"`
	ByType          map[string]LoyaltyTypeSummary `json:"by_type"`
	Recommendations []LoyaltyRecommendation       `json:"recommendations"`
}

// LoyaltyTypeSummary aggregates value and points for one program type.
type LoyaltyTypeSummary struct {
	Value  decimal.Decimal `json:"value"`
	Points decimal.Decimal `json:"points"`
}

// LoyaltyRecommendation is an upstream redemption hint for one program.
type LoyaltyRecommendation struct {
	Program string `json:"program"`
	Message string `json:"message"`
}
