package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/repository"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
)

// FavoriteService implements the business logic for buyer favorites.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
	profiles  repository.ProfileRepository
	logger    *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favorites repository.FavoriteRepository, products repository.ProductRepository, profiles repository.ProfileRepository, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		products:  products,
		profiles:  profiles,
		logger:    logger,
	}
}

// ListFavorites returns the buyer's saved products, newest first.
func (s *FavoriteService) ListFavorites(ctx context.Context, buyerID string) ([]domain.FavoriteItem, error) {
	items, err := s.favorites.List(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return items, nil
}

// AddFavorite saves an active product for the buyer. The buyer must have a
// profile; saving a deactivated listing is treated the same as saving a
// missing one.
func (s *FavoriteService) AddFavorite(ctx context.Context, buyerID, productID string) (*domain.Favorite, error) {
	if _, err := s.profiles.GetBuyer(ctx, buyerID); err != nil {
		return nil, fmt.Errorf("check buyer profile: %w", err)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if !product.IsActive {
		return nil, apperrors.NotFound("product", productID)
	}

	fav, err := s.favorites.Add(ctx, buyerID, productID)
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite added",
		slog.String("buyer_id", buyerID),
		slog.String("product_id", productID),
	)

	return fav, nil
}

// RemoveFavorite deletes a saved product for the buyer.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, buyerID, productID string) error {
	if err := s.favorites.Remove(ctx, buyerID, productID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite removed",
		slog.String("buyer_id", buyerID),
		slog.String("product_id", productID),
	)

	return nil
}
