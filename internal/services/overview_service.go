package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"ledgerview/internal/models"
	"ledgerview/internal/upstream"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
	ErrInvalidTypeFilter = errors.New("invalid type filter")
)

// Sort fields accepted by the dashboard table.
const (
	SortByName    = "name"
	SortByType    = "type"
	SortByBalance = "balance"
	SortByUpdated = "updated"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type overviewService struct {
	backend      upstream.API
	baseCurrency string
	collator     *collate.Collator
	metrics      MetricsRecorderInterface
}

func NewOverviewService(backend upstream.API, baseCurrency string, metrics MetricsRecorderInterface) OverviewServiceInterface {
	return &overviewService{
		backend:      backend,
		baseCurrency: baseCurrency,
		collator:     collate.New(language.English, collate.IgnoreCase),
		metrics:      metrics,
	}
}

// BuildOverview fetches the three backend collections and merges them into
// one row set. Rows are mapped in source order (bank, then investment, then
// loyalty), optionally filtered by type, then stably sorted so equal-key
// rows keep their source order between renders.
func (s *overviewService) BuildOverview(ctx context.Context, query OverviewQuery) (*Overview, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	started := time.Now()

	accounts, err := s.backend.BankAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bank accounts: %w", err)
	}

	investments, err := s.backend.Investments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch investments: %w", err)
	}

	programs, err := s.backend.LoyaltyPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loyalty programs: %w", err)
	}

	baseCurrency := s.baseCurrency
	if query.BaseCurrency != "" {
		baseCurrency = strings.ToUpper(query.BaseCurrency)
	}

	rows := s.mapRows(accounts, investments, programs, baseCurrency)
	totals := s.computeTotals(accounts, investments, programs, baseCurrency)

	rows = filterRows(rows, query.TypeFilter)
	s.sortRows(rows, query.SortField, query.SortOrder)

	if s.metrics != nil {
		s.metrics.RecordProcessingTime("overview.build", time.Since(started))
		s.metrics.RecordGauge("overview.row_count", float64(len(rows)), nil)
	}

	slog.Info("dashboard overview built",
		"bank_count", len(accounts),
		"investment_count", len(investments),
		"loyalty_count", len(programs),
		"filter", query.TypeFilter,
		"sort", query.SortField)

	return &Overview{Rows: rows, Totals: totals}, nil
}

func validateQuery(query OverviewQuery) error {
	if query.TypeFilter != "" && query.TypeFilter != "all" && !models.IsValidRowType(query.TypeFilter) {
		return ErrInvalidTypeFilter
	}

	switch query.SortField {
	case "", SortByName, SortByType, SortByBalance, SortByUpdated:
	default:
		return ErrInvalidSortField
	}

	switch query.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		return ErrInvalidSortOrder
	}

	return nil
}

// mapRows builds the unified rows in source-collection order. Investment
// value is recomputed from quantity and last price on every call so a price
// refresh is always reflected; loyalty value is carried verbatim because the
// backend already expresses it in the base currency.
func (s *overviewService) mapRows(
	accounts []models.BankAccount,
	investments []models.Investment,
	programs []models.LoyaltyProgram,
	baseCurrency string,
) []models.UnifiedRow {
	rows := make([]models.UnifiedRow, 0, len(accounts)+len(investments)+len(programs))

	for _, account := range accounts {
		rows = append(rows, models.UnifiedRow{
			Type:        models.RowTypeBank,
			SourceID:    account.ID,
			Name:        account.AccountName,
			Value:       account.Balance,
			Currency:    account.Currency,
			LastUpdated: account.LastUpdated,
		})
	}

	for _, investment := range investments {
		rows = append(rows, models.UnifiedRow{
			Type:        models.RowTypeInvestment,
			SourceID:    investment.ID,
			Name:        investment.Symbol,
			Value:       investment.MarketValue(),
			Currency:    investment.Currency,
			LastUpdated: investment.LastUpdated,
		})
	}

	for _, program := range programs {
		rows = append(rows, models.UnifiedRow{
			Type:        models.RowTypeLoyalty,
			SourceID:    program.ID,
			Name:        program.ProgramName,
			Value:       program.CurrencyValue,
			Currency:    baseCurrency,
			LastUpdated: program.LastUpdated,
		})
	}

	return rows
}

func (s *overviewService) computeTotals(
	accounts []models.BankAccount,
	investments []models.Investment,
	programs []models.LoyaltyProgram,
	baseCurrency string,
) models.OverviewTotals {
	totals := models.OverviewTotals{
		BankBalance:     decimal.Zero,
		InvestmentValue: decimal.Zero,
		LoyaltyValue:    decimal.Zero,
		BankCount:       len(accounts),
		InvestmentCount: len(investments),
		LoyaltyCount:    len(programs),
		BaseCurrency:    baseCurrency,
	}

	for _, account := range accounts {
		totals.BankBalance = totals.BankBalance.Add(account.Balance)
	}
	for _, investment := range investments {
		totals.InvestmentValue = totals.InvestmentValue.Add(investment.MarketValue())
	}
	for _, program := range programs {
		totals.LoyaltyValue = totals.LoyaltyValue.Add(program.CurrencyValue)
	}

	totals.GrandTotal = totals.BankBalance.Add(totals.InvestmentValue).Add(totals.LoyaltyValue)

	return totals
}

func filterRows(rows []models.UnifiedRow, typeFilter string) []models.UnifiedRow {
	if typeFilter == "" || typeFilter == "all" {
		return rows
	}

	filtered := make([]models.UnifiedRow, 0, len(rows))
	for _, row := range rows {
		if row.Type == typeFilter {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// sortRows sorts in place. The sort must be stable: ties keep the source
// order so repeated renders with the same key never visibly reorder rows.
func (s *overviewService) sortRows(rows []models.UnifiedRow, field, order string) {
	if field == "" {
		return
	}

	descending := order == SortDesc

	less := func(a, b models.UnifiedRow) bool {
		switch field {
		case SortByName:
			return s.collator.CompareString(a.Name, b.Name) < 0
		case SortByType:
			return s.collator.CompareString(a.Type, b.Type) < 0
		case SortByBalance:
			return a.Value.LessThan(b.Value)
		case SortByUpdated:
			return a.LastUpdated.Before(b.LastUpdated)
		default:
			return false
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}
