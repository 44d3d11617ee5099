package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/event"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
	pkgkafka "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/kafka"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// --- Mock Repositories ---

type mockListingRepo struct {
	mock.Mock
}

func (m *mockListingRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockListingRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockListingRepo) ListByFarmer(ctx context.Context, farmerID string, page pagination.Page) ([]domain.Product, int, error) {
	args := m.Called(ctx, farmerID, page)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockListingRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockListingRepo) Delete(ctx context.Context, id string) error {
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

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestProductService(repo *mockListingRepo, profiles *mockProfileRepo) *ProductService {
	logger := newTestLogger()
	// The producer points at no real broker; publish failures are non-fatal.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)
	return NewProductService(repo, profiles, producer, logger)
}

func testFarmerProfile(userID string) *domain.FarmerProfile {
	lat, lng := 6.5244, 3.3792
	return &domain.FarmerProfile{
		UserID:    userID,
		FullName:  "Adaeze Obi",
		FarmName:  "Obi Farms",
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func validCreateInput() *CreateProductInput {
	return &CreateProductInput{
		Title:             "Fresh Ofada Rice",
		CropType:          domain.CropRice,
		Variety:           "Ofada",
		QualityGrade:      domain.GradePremium,
		PricePerUnit:      45000,
		Unit:              "bag",
		QuantityAvailable: 120,
		IsOrganic:         true,
	}
}

// --- Tests ---

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	profiles.On("GetFarmer", ctx, "farmer-1").Return(testFarmerProfile("farmer-1"), nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	product, err := svc.CreateProduct(ctx, "farmer-1", validCreateInput())

	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "farmer-1", product.FarmerID)
	assert.Equal(t, "Fresh Ofada Rice", product.Title)
	assert.Equal(t, domain.CropRice, product.CropType)
	assert.True(t, product.IsActive)
	assert.Equal(t, []string{}, product.Images)
	assert.NotZero(t, product.CreatedAt)
	assert.NotZero(t, product.UpdatedAt)

	repo.AssertExpectations(t)
	profiles.AssertExpectations(t)
}

func TestCreateProduct_RequiresFarmerProfile(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	profiles.On("GetFarmer", ctx, "farmer-1").
		Return(nil, apperrors.NotFound("farmer profile", "farmer-1"))

	product, err := svc.CreateProduct(ctx, "farmer-1", validCreateInput())

	assert.Nil(t, product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateProductInput)
	}{
		{"empty title", func(in *CreateProductInput) { in.Title = "" }},
		{"unknown crop", func(in *CreateProductInput) { in.CropType = "Dragonfruit" }},
		{"unknown grade", func(in *CreateProductInput) { in.QualityGrade = "grade_z" }},
		{"unknown unit", func(in *CreateProductInput) { in.Unit = "gallon" }},
		{"zero price", func(in *CreateProductInput) { in.PricePerUnit = 0 }},
		{"negative quantity", func(in *CreateProductInput) { in.QuantityAvailable = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockListingRepo)
			profiles := new(mockProfileRepo)
			svc := newTestProductService(repo, profiles)

			input := validCreateInput()
			tt.mutate(input)

			product, err := svc.CreateProduct(context.Background(), "farmer-1", input)

			assert.Nil(t, product)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestUpdateProduct_Success(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	existing := &domain.Product{
		ID:                "prod-1",
		FarmerID:          "farmer-1",
		Title:             "Fresh Ofada Rice",
		CropType:          domain.CropRice,
		QualityGrade:      domain.GradePremium,
		PricePerUnit:      45000,
		Unit:              "bag",
		QuantityAvailable: 120,
		IsActive:          true,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}

	repo.On("GetByID", ctx, "prod-1").Return(existing, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

	newPrice := 42000.0
	updated, err := svc.UpdateProduct(ctx, "farmer-1", "prod-1", &UpdateProductInput{
		PricePerUnit: &newPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, 42000.0, updated.PricePerUnit)
	assert.Equal(t, "Fresh Ofada Rice", updated.Title)
	repo.AssertExpectations(t)
}

func TestUpdateProduct_NotOwner(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	repo.On("GetByID", ctx, "prod-1").Return(&domain.Product{
		ID:       "prod-1",
		FarmerID: "farmer-2",
	}, nil)

	title := "Hijacked"
	updated, err := svc.UpdateProduct(ctx, "farmer-1", "prod-1", &UpdateProductInput{
		Title: &title,
	})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteProduct_NotOwner(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	repo.On("GetByID", ctx, "prod-1").Return(&domain.Product{
		ID:       "prod-1",
		FarmerID: "farmer-2",
	}, nil)

	err := svc.DeleteProduct(ctx, "farmer-1", "prod-1")

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").
		Return(nil, apperrors.NotFound("product", "missing"))

	err := svc.DeleteProduct(ctx, "farmer-1", "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListMyProducts(t *testing.T) {
	repo := new(mockListingRepo)
	profiles := new(mockProfileRepo)
	svc := newTestProductService(repo, profiles)
	ctx := context.Background()

	repo.On("ListByFarmer", ctx, "farmer-1", pagination.New(1, 20)).
		Return([]domain.Product{{ID: "prod-1"}, {ID: "prod-2"}}, 2, nil)

	products, meta, err := svc.ListMyProducts(ctx, "farmer-1", 1, 20)

	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}
