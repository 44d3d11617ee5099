package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(n float64) *float64 { return &n }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var searchRowColumns = []string{
	"id", "farmer_id", "title", "crop_type", "variety", "quality_grade",
	"price_per_unit", "unit", "quantity_available", "is_organic",
	"harvest_date", "available_from", "description", "images", "created_at",
	"full_name", "farm_name", "is_verified", "rating", "latitude", "longitude", "certifications",
	"state_name", "lga_name",
	"total_count",
}

func sampleSearchRow(total int) []any {
	return []any{
		"550e8400-e29b-41d4-a716-446655440001", "farmer-1", "Fresh Ofada Rice", "Rice", "Ofada", "premium",
		45000.0, "bag", 120.0, true,
		(*time.Time)(nil), (*time.Time)(nil), "Locally grown", []string{}, testNow,
		strPtr("Adaeze Obi"), strPtr("Obi Farms"), boolPtr(true), floatPtr(4.6), floatPtr(6.5244), floatPtr(3.3792), []string{"organic"},
		strPtr("Lagos"), strPtr("Ikorodu"),
		total,
	}
}

// ============================================================================
// buildSearchConditions
// ============================================================================

func TestBuildSearchConditions_BaselineAlwaysPresent(t *testing.T) {
	conditions, args := buildSearchConditions(domain.NewSearchFilters(), testNow)

	assert.Equal(t, []string{"p.is_active = TRUE", "p.quantity_available > 0"}, conditions)
	assert.Empty(t, args)
}

func TestBuildSearchConditions_TextQuerySearchesFourColumns(t *testing.T) {
	f := domain.NewSearchFilters()
	f.Query = "rice"

	conditions, args := buildSearchConditions(f, testNow)

	require.Len(t, conditions, 3)
	assert.Equal(t, "(p.title ILIKE $1 OR p.crop_type ILIKE $1 OR p.variety ILIKE $1 OR p.description ILIKE $1)", conditions[2])
	assert.Equal(t, []any{"%rice%"}, args)
}

func TestBuildSearchConditions_AllFilters(t *testing.T) {
	f := domain.NewSearchFilters()
	f.Query = "rice"
	f.CropTypes = []string{"Rice", "Maize"}
	f.QualityGrades = []string{"premium"}
	f.MinPrice = floatPtr(1000)
	f.MaxPrice = floatPtr(5000)
	f.StateID = strPtr("LA")
	f.LGAID = strPtr("LA-IKD")
	f.IsOrganic = boolPtr(true)
	f.Availability = domain.AvailabilityNow
	f.HarvestPeriod = domain.HarvestLast30Days
	f.Certifications = []string{"organic"}

	conditions, args := buildSearchConditions(f, testNow)

	// 2 baseline + 11 filter predicates, is_organic carries no arg.
	assert.Len(t, conditions, 13)
	assert.Len(t, args, 10)
	assert.Contains(t, conditions, "p.crop_type = ANY($2)")
	assert.Contains(t, conditions, "p.is_organic = TRUE")
	assert.Contains(t, conditions, "f.certifications && $10")
}

func TestBuildSearchConditions_AvailabilityBounds(t *testing.T) {
	tests := []struct {
		availability string
		cutoff       time.Time
	}{
		{domain.AvailabilityNow, testNow},
		{domain.AvailabilityWeek, testNow.AddDate(0, 0, 7)},
		{domain.AvailabilityMonth, testNow.AddDate(0, 0, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.availability, func(t *testing.T) {
			f := domain.NewSearchFilters()
			f.Availability = tt.availability

			conditions, args := buildSearchConditions(f, testNow)

			assert.Contains(t, conditions, "p.available_from <= $1")
			require.Len(t, args, 1)
			assert.Equal(t, tt.cutoff, args[0])
		})
	}
}

func TestBuildSearchConditions_HarvestBounds(t *testing.T) {
	tests := []struct {
		period string
		cutoff time.Time
	}{
		{domain.HarvestLast30Days, testNow.AddDate(0, 0, -30)},
		{domain.HarvestLast3Months, testNow.AddDate(0, 0, -90)},
		{domain.HarvestLast6Months, testNow.AddDate(0, 0, -180)},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			f := domain.NewSearchFilters()
			f.HarvestPeriod = tt.period

			conditions, args := buildSearchConditions(f, testNow)

			assert.Contains(t, conditions, "p.harvest_date >= $1")
			require.Len(t, args, 1)
			assert.Equal(t, tt.cutoff, args[0])
		})
	}
}

func TestBuildSearchConditions_OrganicFalseIsNoFilter(t *testing.T) {
	f := domain.NewSearchFilters()
	f.IsOrganic = boolPtr(false)

	conditions, _ := buildSearchConditions(f, testNow)

	assert.NotContains(t, conditions, "p.is_organic = TRUE")
}

// ============================================================================
// orderClause
// ============================================================================

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "p.price_per_unit ASC", orderClause(domain.SortPriceAsc))
	assert.Equal(t, "p.price_per_unit DESC", orderClause(domain.SortPriceDesc))
	assert.Equal(t, "p.created_at DESC", orderClause(domain.SortDate))

	// Distance and rating sorts fall back to recency.
	assert.Equal(t, "p.created_at DESC", orderClause(domain.SortDistance))
	assert.Equal(t, "p.created_at DESC", orderClause(domain.SortRating))
}

// ============================================================================
// Search
// ============================================================================

func TestSearchRepository_Search_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products p").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(searchRowColumns).
			AddRow(sampleSearchRow(42)...))

	rows, total, err := repo.Search(context.Background(), domain.NewSearchFilters(), pagination.New(1, 20))
	require.NoError(t, err)

	assert.Equal(t, 42, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Fresh Ofada Rice", rows[0].Title)
	assert.Equal(t, "Adaeze Obi", *rows[0].FarmerName)
	assert.Equal(t, 6.5244, *rows[0].FarmerLat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_FilterArgsInOrder(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	f := domain.NewSearchFilters()
	f.Query = "rice"
	f.MinPrice = floatPtr(1000)

	mock.ExpectQuery("SELECT .+ FROM products p").
		WithArgs("%rice%", 1000.0, 10, 10).
		WillReturnRows(pgxmock.NewRows(searchRowColumns))

	rows, total, err := repo.Search(context.Background(), f, pagination.New(2, 10))
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_QueryError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products p").
		WithArgs(20, 0).
		WillReturnError(assert.AnError)

	_, _, err := repo.Search(context.Background(), domain.NewSearchFilters(), pagination.New(1, 20))
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
