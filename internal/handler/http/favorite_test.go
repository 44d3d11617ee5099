package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// =============================================================================
// Mocks
// =============================================================================

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) List(ctx context.Context, buyerID string) ([]domain.FavoriteItem, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).([]domain.FavoriteItem), args.Error(1)
}

func (m *mockFavoriteRepo) Add(ctx context.Context, buyerID, productID string) (*domain.Favorite, error) {
	args := m.Called(ctx, buyerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, buyerID, productID string) error {
	args := m.Called(ctx, buyerID, productID)
	return args.Error(0)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) ListByFarmer(ctx context.Context, farmerID string, page pagination.Page) ([]domain.Product, int, error) {
	args := m.Called(ctx, farmerID, page)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProfileRepo struct {
	mock.Mock
}

func (m *mockProfileRepo) GetFarmer(ctx context.Context, userID string) (*domain.FarmerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FarmerProfile), args.Error(1)
}

func (m *mockProfileRepo) UpsertFarmer(ctx context.Context, profile *domain.FarmerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepo) GetBuyer(ctx context.Context, userID string) (*domain.BuyerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuyerProfile), args.Error(1)
}

func (m *mockProfileRepo) UpsertBuyer(ctx context.Context, profile *domain.BuyerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// =============================================================================
// Test helpers
// =============================================================================

const favProductID = "550e8400-e29b-41d4-a716-446655440001"

func favoriteRouter(favRepo *mockFavoriteRepo, prodRepo *mockProductRepo, profileRepo *mockProfileRepo) *chi.Mux {
	svc := service.NewFavoriteService(favRepo, prodRepo, profileRepo, testLogger())
	handler := NewFavoriteHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/v1/favorites", func(r chi.Router) {
		r.Use(testUser("buyer-1", auth.RoleBuyer))
		r.Get("/", handler.ListFavorites)
		r.Post("/{productId}", handler.AddFavorite)
		r.Delete("/{productId}", handler.RemoveFavorite)
	})
	return r
}

func activeListing() *domain.Product {
	return &domain.Product{
		ID:       favProductID,
		FarmerID: "farmer-1",
		Title:    "Fresh Ofada Rice",
		IsActive: true,
	}
}

func buyerProfile() *domain.BuyerProfile {
	return &domain.BuyerProfile{
		UserID:   "buyer-1",
		FullName: "Chinedu Okeke",
	}
}

// =============================================================================
// Favorites endpoints
// =============================================================================

func TestAddFavorite_Success(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	profileRepo := new(mockProfileRepo)
	router := favoriteRouter(favRepo, prodRepo, profileRepo)

	profileRepo.On("GetBuyer", mock.Anything, "buyer-1").Return(buyerProfile(), nil)
	prodRepo.On("GetByID", mock.Anything, favProductID).Return(activeListing(), nil)
	favRepo.On("Add", mock.Anything, "buyer-1", favProductID).
		Return(&domain.Favorite{BuyerID: "buyer-1", ProductID: favProductID, CreatedAt: time.Now().UTC()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	favRepo.AssertExpectations(t)
	prodRepo.AssertExpectations(t)
}

func TestAddFavorite_BuyerProfileMissing(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	profileRepo := new(mockProfileRepo)
	router := favoriteRouter(favRepo, prodRepo, profileRepo)

	profileRepo.On("GetBuyer", mock.Anything, "buyer-1").
		Return(nil, apperrors.NotFound("buyer profile", "buyer-1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	favRepo.AssertNotCalled(t, "Add")
	prodRepo.AssertNotCalled(t, "GetByID")
}

func TestAddFavorite_ProductMissing(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	profileRepo := new(mockProfileRepo)
	router := favoriteRouter(favRepo, prodRepo, profileRepo)

	profileRepo.On("GetBuyer", mock.Anything, "buyer-1").Return(buyerProfile(), nil)
	prodRepo.On("GetByID", mock.Anything, favProductID).Return(nil, apperrors.NotFound("product", favProductID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	favRepo.AssertNotCalled(t, "Add")
}

func TestAddFavorite_InactiveProductIsNotFound(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	profileRepo := new(mockProfileRepo)
	router := favoriteRouter(favRepo, prodRepo, profileRepo)

	inactive := activeListing()
	inactive.IsActive = false
	profileRepo.On("GetBuyer", mock.Anything, "buyer-1").Return(buyerProfile(), nil)
	prodRepo.On("GetByID", mock.Anything, favProductID).Return(inactive, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	favRepo.AssertNotCalled(t, "Add")
}

func TestAddFavorite_Duplicate(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	profileRepo := new(mockProfileRepo)
	router := favoriteRouter(favRepo, prodRepo, profileRepo)

	profileRepo.On("GetBuyer", mock.Anything, "buyer-1").Return(buyerProfile(), nil)
	prodRepo.On("GetByID", mock.Anything, favProductID).Return(activeListing(), nil)
	favRepo.On("Add", mock.Anything, "buyer-1", favProductID).
		Return(nil, apperrors.AlreadyExists("favorite", "product_id", favProductID))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRemoveFavorite_NotFound(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	profileRepo := new(mockProfileRepo)
	router := favoriteRouter(favRepo, prodRepo, profileRepo)

	favRepo.On("Remove", mock.Anything, "buyer-1", favProductID).
		Return(apperrors.NotFound("favorite", favProductID))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveFavorite_Success(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	router := favoriteRouter(favRepo, prodRepo, new(mockProfileRepo))

	favRepo.On("Remove", mock.Anything, "buyer-1", favProductID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/favorites/"+favProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	favRepo.AssertExpectations(t)
}

func TestListFavorites_Success(t *testing.T) {
	favRepo := new(mockFavoriteRepo)
	prodRepo := new(mockProductRepo)
	router := favoriteRouter(favRepo, prodRepo, new(mockProfileRepo))

	items := []domain.FavoriteItem{
		{Product: *activeListing(), FarmName: "Obi Farms", SavedAt: time.Now().UTC()},
	}
	favRepo.On("List", mock.Anything, "buyer-1").Return(items, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/favorites/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Obi Farms")
}
