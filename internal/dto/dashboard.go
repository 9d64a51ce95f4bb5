package dto

import (
	"ledgerview/internal/models"
	"ledgerview/internal/services"
)

// DashboardQuery contains the table-shaping parameters for the dashboard
type DashboardQuery struct {
	Type     string `query:"type" validate:"omitempty,row_type_filter"`
	Sort     string `query:"sort" validate:"omitempty,sort_field"`
	Order    string `query:"order" validate:"omitempty,sort_order"`
	Currency string `query:"currency" validate:"omitempty,currency_code"`
}

// DashboardResponse is the unified table plus header totals
type DashboardResponse struct {
	Rows   []models.UnifiedRow   `json:"rows"`
	Totals models.OverviewTotals `json:"totals"`
}

// SpendingResponse is the per-account spending-by-category breakdown over
// the backend's last-30-day window
type SpendingResponse struct {
	AccountID  int64                            `json:"account_id"`
	Categories []services.CategorySpendingEntry `json:"categories"`
}

// PerformanceResponse lists per-investment performance
type PerformanceResponse struct {
	Investments []models.InvestmentPerformance `json:"investments"`
}
