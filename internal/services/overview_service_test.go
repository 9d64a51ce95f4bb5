package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"ledgerview/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type OverviewServiceSuite struct {
	suite.Suite
	backend *fakeBackend
	service OverviewServiceInterface
}

func (s *OverviewServiceSuite) SetupTest() {
	s.backend = newFakeBackend()
	s.service = NewOverviewService(s.backend, "USD", nil)
}

func TestOverviewServiceSuite(t *testing.T) {
	suite.Run(t, new(OverviewServiceSuite))
}

func (s *OverviewServiceSuite) seedCollections() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.backend.accounts = []models.BankAccount{
		{ID: 1, AccountName: "Everyday Checking", Currency: "USD", Balance: decimal.NewFromFloat(2500.00), LastUpdated: base},
		{ID: 2, AccountName: "Travel Savings", Currency: "EUR", Balance: decimal.NewFromFloat(900.50), LastUpdated: base.Add(time.Hour)},
	}
	s.backend.investments = []models.Investment{
		{ID: 10, Symbol: "VTI", Quantity: decimal.NewFromInt(4), LastPrice: decimal.NewFromFloat(250.00), Currency: "USD", LastUpdated: base.Add(2 * time.Hour)},
	}
	s.backend.programs = []models.LoyaltyProgram{
		{ID: 20, ProgramName: "SkyMiles", ProgramType: models.LoyaltyTypeAirline, CurrencyValue: decimal.NewFromFloat(130.00), LastUpdated: base.Add(3 * time.Hour)},
	}
}

func (s *OverviewServiceSuite) TestBuildOverview_SourceOrder() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.NoError(err)
	s.Len(overview.Rows, 4)

	// Bank rows first, then investments, then loyalty
	s.Equal(models.RowTypeBank, overview.Rows[0].Type)
	s.Equal(models.RowTypeBank, overview.Rows[1].Type)
	s.Equal(models.RowTypeInvestment, overview.Rows[2].Type)
	s.Equal(models.RowTypeLoyalty, overview.Rows[3].Type)
}

func (s *OverviewServiceSuite) TestBuildOverview_InvestmentValueRecomputed() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.NoError(err)

	// 4 shares x 250.00
	s.True(overview.Rows[2].Value.Equal(decimal.NewFromFloat(1000.00)),
		"expected 1000.00, got %s", overview.Rows[2].Value)

	// Price moves, next build reflects it without any cache
	s.backend.investments[0].LastPrice = decimal.NewFromFloat(260.00)
	overview, err = s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.NoError(err)
	s.True(overview.Rows[2].Value.Equal(decimal.NewFromFloat(1040.00)))
}

func (s *OverviewServiceSuite) TestBuildOverview_LoyaltyUsesBaseCurrencyLabel() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.NoError(err)

	loyaltyRow := overview.Rows[3]
	s.Equal("USD", loyaltyRow.Currency)
	s.True(loyaltyRow.Value.Equal(decimal.NewFromFloat(130.00)))
}

func (s *OverviewServiceSuite) TestBuildOverview_CurrencyLabelOverride() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{BaseCurrency: "eur"})
	s.NoError(err)

	s.Equal("EUR", overview.Rows[3].Currency)
	s.Equal("EUR", overview.Totals.BaseCurrency)
	// The label changes; values are never converted
	s.True(overview.Rows[3].Value.Equal(decimal.NewFromFloat(130.00)))
}

func (s *OverviewServiceSuite) TestBuildOverview_Totals() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.NoError(err)

	totals := overview.Totals
	s.Equal(2, totals.BankCount)
	s.Equal(1, totals.InvestmentCount)
	s.Equal(1, totals.LoyaltyCount)
	s.True(totals.BankBalance.Equal(decimal.NewFromFloat(3400.50)))
	s.True(totals.InvestmentValue.Equal(decimal.NewFromFloat(1000.00)))
	s.True(totals.LoyaltyValue.Equal(decimal.NewFromFloat(130.00)))
	s.True(totals.GrandTotal.Equal(decimal.NewFromFloat(4530.50)))
	s.Equal("USD", totals.BaseCurrency)
}

func (s *OverviewServiceSuite) TestBuildOverview_EmptyCollections() {
	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.NoError(err)
	s.Empty(overview.Rows)
	s.True(overview.Totals.GrandTotal.IsZero())
}

func (s *OverviewServiceSuite) TestBuildOverview_TypeFilter() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{TypeFilter: models.RowTypeBank})
	s.NoError(err)
	s.Len(overview.Rows, 2)
	for _, row := range overview.Rows {
		s.Equal(models.RowTypeBank, row.Type)
	}

	// Totals still cover all collections, filtering shapes only the rows
	s.Equal(1, overview.Totals.InvestmentCount)
}

func (s *OverviewServiceSuite) TestBuildOverview_FilterAll() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{TypeFilter: "all"})
	s.NoError(err)
	s.Len(overview.Rows, 4)
}

func (s *OverviewServiceSuite) TestBuildOverview_SortByBalance() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByBalance, SortOrder: SortAsc})
	s.NoError(err)

	for i := 1; i < len(overview.Rows); i++ {
		s.True(overview.Rows[i-1].Value.LessThanOrEqual(overview.Rows[i].Value))
	}
}

func (s *OverviewServiceSuite) TestBuildOverview_SortStability() {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Three accounts sharing one balance; their source order must survive
	// sorting by balance in both directions.
	s.backend.accounts = []models.BankAccount{
		{ID: 1, AccountName: "First", Balance: decimal.NewFromInt(100), Currency: "USD", LastUpdated: base},
		{ID: 2, AccountName: "Second", Balance: decimal.NewFromInt(100), Currency: "USD", LastUpdated: base},
		{ID: 3, AccountName: "Third", Balance: decimal.NewFromInt(100), Currency: "USD", LastUpdated: base},
	}

	asc, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByBalance, SortOrder: SortAsc})
	s.NoError(err)
	desc, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByBalance, SortOrder: SortDesc})
	s.NoError(err)

	for i, name := range []string{"First", "Second", "Third"} {
		s.Equal(name, asc.Rows[i].Name)
		s.Equal(name, desc.Rows[i].Name)
	}
}

func (s *OverviewServiceSuite) TestBuildOverview_DescendingReversesDistinctKeys() {
	s.seedCollections()

	asc, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByName, SortOrder: SortAsc})
	s.NoError(err)
	desc, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByName, SortOrder: SortDesc})
	s.NoError(err)

	n := len(asc.Rows)
	for i := 0; i < n; i++ {
		s.Equal(asc.Rows[i].Name, desc.Rows[n-1-i].Name)
	}
}

func (s *OverviewServiceSuite) TestBuildOverview_SortByName_CaseInsensitive() {
	base := time.Now().UTC()
	s.backend.accounts = []models.BankAccount{
		{ID: 1, AccountName: "zeta", Balance: decimal.NewFromInt(1), Currency: "USD", LastUpdated: base},
		{ID: 2, AccountName: "Alpha", Balance: decimal.NewFromInt(1), Currency: "USD", LastUpdated: base},
	}

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByName, SortOrder: SortAsc})
	s.NoError(err)
	s.Equal("Alpha", overview.Rows[0].Name)
	s.Equal("zeta", overview.Rows[1].Name)
}

func (s *OverviewServiceSuite) TestBuildOverview_SortByUpdated() {
	s.seedCollections()

	overview, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByUpdated, SortOrder: SortDesc})
	s.NoError(err)

	for i := 1; i < len(overview.Rows); i++ {
		s.False(overview.Rows[i-1].LastUpdated.Before(overview.Rows[i].LastUpdated))
	}
}

func (s *OverviewServiceSuite) TestBuildOverview_InvalidQuery() {
	_, err := s.service.BuildOverview(context.Background(), OverviewQuery{SortField: "color"})
	s.ErrorIs(err, ErrInvalidSortField)

	_, err = s.service.BuildOverview(context.Background(), OverviewQuery{SortField: SortByName, SortOrder: "sideways"})
	s.ErrorIs(err, ErrInvalidSortOrder)

	_, err = s.service.BuildOverview(context.Background(), OverviewQuery{TypeFilter: "crypto"})
	s.ErrorIs(err, ErrInvalidTypeFilter)
}

func (s *OverviewServiceSuite) TestBuildOverview_BackendFailure() {
	s.backend.investmentsErr = errors.New("boom")

	_, err := s.service.BuildOverview(context.Background(), OverviewQuery{})
	s.Error(err)
	s.Contains(err.Error(), "failed to fetch investments")
}
