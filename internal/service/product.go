package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/event"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/repository"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// ProductService implements the business logic for farmer listings.
type ProductService struct {
	repo     repository.ProductRepository
	profiles repository.ProfileRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, profiles repository.ProfileRepository, producer *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		profiles: profiles,
		producer: producer,
		logger:   logger,
	}
}

// CreateProductInput holds the parameters for creating a listing.
type CreateProductInput struct {
	Title             string
	CropType          string
	Variety           string
	QualityGrade      string
	PricePerUnit      float64
	Unit              string
	QuantityAvailable float64
	IsOrganic         bool
	HarvestDate       *time.Time
	AvailableFrom     *time.Time
	Description       string
	Images            []string
}

// UpdateProductInput holds the parameters for updating a listing. Nil
// fields are left unchanged.
type UpdateProductInput struct {
	Title             *string
	Variety           *string
	QualityGrade      *string
	PricePerUnit      *float64
	Unit              *string
	QuantityAvailable *float64
	IsOrganic         *bool
	HarvestDate       *time.Time
	AvailableFrom     *time.Time
	Description       *string
	Images            []string
	IsActive          *bool
}

// CreateProduct creates a new listing owned by the given farmer. The
// farmer must have a profile before listing produce.
func (s *ProductService) CreateProduct(ctx context.Context, farmerID string, input *CreateProductInput) (*domain.Product, error) {
	if err := validateListingInput(input); err != nil {
		return nil, err
	}

	if _, err := s.profiles.GetFarmer(ctx, farmerID); err != nil {
		return nil, fmt.Errorf("check farmer profile: %w", err)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:                uuid.New().String(),
		FarmerID:          farmerID,
		Title:             input.Title,
		CropType:          input.CropType,
		Variety:           input.Variety,
		QualityGrade:      input.QualityGrade,
		PricePerUnit:      input.PricePerUnit,
		Unit:              input.Unit,
		QuantityAvailable: input.QuantityAvailable,
		IsOrganic:         input.IsOrganic,
		HarvestDate:       input.HarvestDate,
		AvailableFrom:     input.AvailableFrom,
		Description:       input.Description,
		Images:            input.Images,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("farmer_id", farmerID),
		slog.String("crop_type", product.CropType),
	)

	return product, nil
}

// GetProduct retrieves a listing by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListMyProducts returns the farmer's own listings.
func (s *ProductService) ListMyProducts(ctx context.Context, farmerID string, pageNum, limit int) ([]domain.Product, pagination.Meta, error) {
	page := pagination.New(pageNum, limit)

	products, total, err := s.repo.ListByFarmer(ctx, farmerID, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list farmer products: %w", err)
	}

	return products, pagination.NewMeta(page, total), nil
}

// UpdateProduct applies a partial update to a listing. Only the owning
// farmer may update it.
func (s *ProductService) UpdateProduct(ctx context.Context, farmerID, id string, input *UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if product.FarmerID != farmerID {
		return nil, apperrors.Forbidden("you do not own this product")
	}

	applyProductUpdate(product, input)

	if err := validateProductFields(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	if err := s.producer.PublishProductUpdated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.updated event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", product.ID),
		slog.String("farmer_id", farmerID),
	)

	return product, nil
}

// DeleteProduct removes a listing. Only the owning farmer may delete it.
func (s *ProductService) DeleteProduct(ctx context.Context, farmerID, id string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product by id: %w", err)
	}

	if product.FarmerID != farmerID {
		return apperrors.Forbidden("you do not own this product")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if err := s.producer.PublishProductDeleted(ctx, id, farmerID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.deleted event",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
		slog.String("farmer_id", farmerID),
	)

	return nil
}

func applyProductUpdate(p *domain.Product, input *UpdateProductInput) {
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Variety != nil {
		p.Variety = *input.Variety
	}
	if input.QualityGrade != nil {
		p.QualityGrade = *input.QualityGrade
	}
	if input.PricePerUnit != nil {
		p.PricePerUnit = *input.PricePerUnit
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.QuantityAvailable != nil {
		p.QuantityAvailable = *input.QuantityAvailable
	}
	if input.IsOrganic != nil {
		p.IsOrganic = *input.IsOrganic
	}
	if input.HarvestDate != nil {
		p.HarvestDate = input.HarvestDate
	}
	if input.AvailableFrom != nil {
		p.AvailableFrom = input.AvailableFrom
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Images != nil {
		p.Images = input.Images
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}
}

func validateListingInput(input *CreateProductInput) error {
	if input.Title == "" {
		return apperrors.InvalidInput("product title is required")
	}
	if !domain.IsValidCropType(input.CropType) {
		return apperrors.InvalidInput("unknown crop type")
	}
	if !domain.IsValidQualityGrade(input.QualityGrade) {
		return apperrors.InvalidInput("unknown quality grade")
	}
	if !domain.IsValidUnit(input.Unit) {
		return apperrors.InvalidInput("unknown unit of sale")
	}
	if input.PricePerUnit <= 0 {
		return apperrors.InvalidInput("price per unit must be positive")
	}
	if input.QuantityAvailable < 0 {
		return apperrors.InvalidInput("quantity available must not be negative")
	}
	return nil
}

func validateProductFields(p *domain.Product) error {
	if p.Title == "" {
		return apperrors.InvalidInput("product title is required")
	}
	if !domain.IsValidQualityGrade(p.QualityGrade) {
		return apperrors.InvalidInput("unknown quality grade")
	}
	if !domain.IsValidUnit(p.Unit) {
		return apperrors.InvalidInput("unknown unit of sale")
	}
	if p.PricePerUnit <= 0 {
		return apperrors.InvalidInput("price per unit must be positive")
	}
	if p.QuantityAvailable < 0 {
		return apperrors.InvalidInput("quantity available must not be negative")
	}
	return nil
}
