package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// =============================================================================
// Mock SearchRepository
// =============================================================================

type mockSearchRepo struct {
	mock.Mock
}

func (m *mockSearchRepo) Search(ctx context.Context, filters domain.SearchFilters, page pagination.Page) ([]domain.ProductRow, int, error) {
	args := m.Called(ctx, filters, page)
	return args.Get(0).([]domain.ProductRow), args.Int(1), args.Error(2)
}

// =============================================================================
// Test helpers
// =============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testUser injects an authenticated identity the way auth.Middleware would.
func testUser(id, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.ContextWithUser(r.Context(), &auth.User{ID: id, Email: id + "@example.com", Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(n float64) *float64 { return &n }

func searchRouter(repo *mockSearchRepo) *chi.Mux {
	svc := service.NewSearchService(repo, testLogger())
	handler := NewSearchHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(testUser("buyer-1", auth.RoleBuyer))
		r.Get("/api/v1/search", handler.Search)
	})
	return r
}

func sampleSearchRow() domain.ProductRow {
	return domain.ProductRow{
		ID:             "550e8400-e29b-41d4-a716-446655440001",
		Title:          "Fresh Ofada Rice",
		CropType:       "Rice",
		QualityGrade:   domain.GradePremium,
		PricePerUnit:   45000,
		Unit:           "bag",
		CreatedAt:      time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
		FarmerID:       "farmer-1",
		FarmerName:     strPtr("Adaeze Obi"),
		FarmName:       strPtr("Obi Farms"),
		FarmerVerified: boolPtr(true),
		FarmerRating:   floatPtr(4.6),
		FarmerLat:      floatPtr(6.5244),
		FarmerLng:      floatPtr(3.3792),
		StateName:      strPtr("Lagos"),
	}
}

// =============================================================================
// GET /api/v1/search
// =============================================================================

func TestSearch_Success(t *testing.T) {
	repo := new(mockSearchRepo)
	router := searchRouter(repo)

	repo.On("Search", mock.Anything, mock.AnythingOfType("domain.SearchFilters"), mock.AnythingOfType("pagination.Page")).
		Return([]domain.ProductRow{sampleSearchRow()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?q=rice&crop_types=Rice", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Fresh Ofada Rice", resp.Products[0].Title)
	assert.Equal(t, "Fresh Ofada <mark>Rice</mark>", resp.Products[0].TitleHighlighted)
	assert.Equal(t, "Adaeze Obi", resp.Products[0].Farmer.Name)
	assert.Equal(t, 1, resp.Pagination.Total)
	assert.Equal(t, "rice", resp.Filters.Query)
	repo.AssertExpectations(t)
}

func TestSearch_MalformedNumberRejected(t *testing.T) {
	repo := new(mockSearchRepo)
	router := searchRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?min_price=abc", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "min_price must be a valid number")
	repo.AssertNotCalled(t, "Search")
}

func TestSearch_InvalidFilterValues(t *testing.T) {
	repo := new(mockSearchRepo)
	router := searchRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?min_price=5000&max_price=1000&radius=900", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Minimum price cannot be greater than maximum price")
	assert.Contains(t, rec.Body.String(), "Search radius must be between 1 and 500 kilometers")
	repo.AssertNotCalled(t, "Search")
}

func TestSearch_RadiusFiltersResults(t *testing.T) {
	repo := new(mockSearchRepo)
	router := searchRouter(repo)

	near := sampleSearchRow()
	far := sampleSearchRow()
	far.ID = "550e8400-e29b-41d4-a716-446655440002"
	far.FarmerLat = floatPtr(9.0765)
	far.FarmerLng = floatPtr(7.3986)

	repo.On("Search", mock.Anything, mock.AnythingOfType("domain.SearchFilters"), mock.AnythingOfType("pagination.Page")).
		Return([]domain.ProductRow{near, far}, 2, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?radius=100&buyer_lat=6.5244&buyer_lng=3.3792", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp service.SearchResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	require.Len(t, resp.Products, 1)
	assert.Equal(t, near.ID, resp.Products[0].ID)
	assert.Equal(t, 2, resp.Pagination.Total)
}
