package handlers

import (
	stderrors "errors"
	"net/http"

	"ledgerview/internal/dto"
	"ledgerview/internal/errors"
	"ledgerview/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the unified dashboard table and its analytics
// companions
type DashboardHandler struct {
	overview    services.OverviewServiceInterface
	performance services.PerformanceServiceInterface
	activity    services.ActivityServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	overview services.OverviewServiceInterface,
	performance services.PerformanceServiceInterface,
	activity services.ActivityServiceInterface,
) *DashboardHandler {
	return &DashboardHandler{
		overview:    overview,
		performance: performance,
		activity:    activity,
	}
}

// GetDashboard builds the unified dashboard view
// @Summary Unified dashboard
// @Description Merge bank accounts, investments, and loyalty programs into one sortable, filterable table with totals
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param type query string false "Row type filter" Enums(bank, investment, loyalty, all)
// @Param sort query string false "Sort field" Enums(name, type, balance, updated)
// @Param order query string false "Sort direction" Enums(asc, desc)
// @Param currency query string false "Base currency label for loyalty rows and totals"
// @Success 200 {object} dto.DashboardResponse "Unified rows and totals"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_005 - Invalid sort or filter parameter"
// @Failure 401 {object} errors.ErrorResponse "AUTH_003 - Backend rejected the token"
// @Failure 502 {object} errors.ErrorResponse "UPSTREAM_001 - Backend unreachable"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	var query dto.DashboardQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral)
	}
	if err := c.Validate(&query); err != nil {
		return err
	}

	overview, err := h.overview.BuildOverview(c.Request().Context(), services.OverviewQuery{
		TypeFilter:   query.Type,
		SortField:    query.Sort,
		SortOrder:    query.Order,
		BaseCurrency: query.Currency,
	})
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidSortField) ||
			stderrors.Is(err, services.ErrInvalidSortOrder) ||
			stderrors.Is(err, services.ErrInvalidTypeFilter) {
			return SendError(c, errors.ValidationInvalidSort, errors.WithDetails(err.Error()))
		}
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DashboardResponse{
		Rows:   overview.Rows,
		Totals: overview.Totals,
	})
}

// GetInvestmentPerformance fetches performance for every investment
// @Summary Investment performance
// @Description Fetch per-investment performance, fanned out concurrently across positions
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PerformanceResponse "Per-investment performance"
// @Failure 502 {object} errors.ErrorResponse "UPSTREAM_001 - Backend unreachable"
// @Router /investments/performance [get]
func (h *DashboardHandler) GetInvestmentPerformance(c echo.Context) error {
	performance, err := h.performance.AllPerformance(c.Request().Context())
	if err != nil {
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, dto.PerformanceResponse{Investments: performance})
}

// GetLoyaltySummary fetches the loyalty valuation rollup
// @Summary Loyalty summary
// @Description Fetch the backend's loyalty valuation rollup and redemption recommendations
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.LoyaltySummary "Loyalty valuation summary"
// @Failure 502 {object} errors.ErrorResponse "UPSTREAM_001 - Backend unreachable"
// @Router /loyalty/summary [get]
func (h *DashboardHandler) GetLoyaltySummary(c echo.Context) error {
	summary, err := h.activity.LoyaltySummary(c.Request().Context())
	if err != nil {
		return SendUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}
