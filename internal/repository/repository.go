package repository

import (
	"context"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// SearchRepository executes buyer searches against the listing store.
type SearchRepository interface {
	// Search returns the joined product/farmer/location rows matching the
	// given filters, along with the total match count before pagination.
	// The geo radius is NOT applied here; it is a post-filter computed by
	// the service after distances are known.
	Search(ctx context.Context, filters domain.SearchFilters, page pagination.Page) ([]domain.ProductRow, int, error)
}

// ProductRepository defines persistence for farmer crop listings.
type ProductRepository interface {
	// Create inserts a new listing.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a listing by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ListByFarmer returns the farmer's own listings with the total count.
	ListByFarmer(ctx context.Context, farmerID string, page pagination.Page) ([]domain.Product, int, error)

	// Update modifies an existing listing.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a listing by its identifier.
	Delete(ctx context.Context, id string) error
}

// FavoriteRepository defines persistence for buyer favorites.
type FavoriteRepository interface {
	// List returns the buyer's saved products, newest first.
	List(ctx context.Context, buyerID string) ([]domain.FavoriteItem, error)

	// Add saves a product for the buyer. A duplicate pair yields a
	// conflict error.
	Add(ctx context.Context, buyerID, productID string) (*domain.Favorite, error)

	// Remove deletes a saved product. A missing pair yields not-found.
	Remove(ctx context.Context, buyerID, productID string) error
}

// ProfileRepository defines persistence for farmer and buyer profiles.
type ProfileRepository interface {
	GetFarmer(ctx context.Context, userID string) (*domain.FarmerProfile, error)
	UpsertFarmer(ctx context.Context, profile *domain.FarmerProfile) error
	GetBuyer(ctx context.Context, userID string) (*domain.BuyerProfile, error)
	UpsertBuyer(ctx context.Context, profile *domain.BuyerProfile) error
}

// LocationRepository serves the states/LGAs reference tables.
type LocationRepository interface {
	ListStates(ctx context.Context) ([]domain.State, error)
	ListLGAs(ctx context.Context, stateID string) ([]domain.LGA, error)
}
