package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
)

// FavoriteRepository implements repository.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	pool database.DBTX
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorite repository.
func NewFavoriteRepository(pool database.DBTX) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

// List returns the buyer's saved products, most recently saved first.
// Listings that have since been deactivated are still returned so the
// buyer can prune them.
func (r *FavoriteRepository) List(ctx context.Context, buyerID string) ([]domain.FavoriteItem, error) {
	query := `
		SELECT p.id, p.farmer_id, p.title, p.crop_type, p.variety, p.quality_grade, p.price_per_unit, p.unit,
			   p.quantity_available, p.is_organic, p.harvest_date, p.available_from, p.description,
			   p.images, p.is_active, p.created_at, p.updated_at,
			   f.farm_name, bf.created_at AS saved_at
		FROM buyer_favorites bf
		JOIN products p ON p.id = bf.product_id
		JOIN farmer_profiles f ON f.user_id = p.farmer_id
		WHERE bf.buyer_id = $1
		ORDER BY bf.created_at DESC`

	rows, err := r.pool.Query(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var items []domain.FavoriteItem

	for rows.Next() {
		var item domain.FavoriteItem

		if err := rows.Scan(
			&item.Product.ID,
			&item.Product.FarmerID,
			&item.Product.Title,
			&item.Product.CropType,
			&item.Product.Variety,
			&item.Product.QualityGrade,
			&item.Product.PricePerUnit,
			&item.Product.Unit,
			&item.Product.QuantityAvailable,
			&item.Product.IsOrganic,
			&item.Product.HarvestDate,
			&item.Product.AvailableFrom,
			&item.Product.Description,
			&item.Product.Images,
			&item.Product.IsActive,
			&item.Product.CreatedAt,
			&item.Product.UpdatedAt,
			&item.FarmName,
			&item.SavedAt,
		); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}

	if items == nil {
		items = []domain.FavoriteItem{}
	}

	return items, nil
}

// Add saves a product for the buyer.
func (r *FavoriteRepository) Add(ctx context.Context, buyerID, productID string) (*domain.Favorite, error) {
	fav := &domain.Favorite{
		BuyerID:   buyerID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO buyer_favorites (buyer_id, product_id, created_at)
		VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, fav.BuyerID, fav.ProductID, fav.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("favorite", "product_id", productID)
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	return fav, nil
}

// Remove deletes a saved product for the buyer.
func (r *FavoriteRepository) Remove(ctx context.Context, buyerID, productID string) error {
	query := `DELETE FROM buyer_favorites WHERE buyer_id = $1 AND product_id = $2`

	ct, err := r.pool.Exec(ctx, query, buyerID, productID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("favorite", productID)
	}

	return nil
}
