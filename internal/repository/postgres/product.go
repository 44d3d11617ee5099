package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

const productColumns = `
	id, farmer_id, title, crop_type, variety, quality_grade, price_per_unit, unit,
	quantity_available, is_organic, harvest_date, available_from, description,
	images, is_active, created_at, updated_at`

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new listing into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, farmer_id, title, crop_type, variety, quality_grade, price_per_unit, unit,
			quantity_available, is_organic, harvest_date, available_from, description, images, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.FarmerID,
		p.Title,
		p.CropType,
		p.Variety,
		p.QualityGrade,
		p.PricePerUnit,
		p.Unit,
		p.QuantityAvailable,
		p.IsOrganic,
		p.HarvestDate,
		p.AvailableFrom,
		p.Description,
		p.Images,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a listing by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.FarmerID,
		&p.Title,
		&p.CropType,
		&p.Variety,
		&p.QualityGrade,
		&p.PricePerUnit,
		&p.Unit,
		&p.QuantityAvailable,
		&p.IsOrganic,
		&p.HarvestDate,
		&p.AvailableFrom,
		&p.Description,
		&p.Images,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// ListByFarmer returns the farmer's own listings, newest first, with the
// total count. Inactive listings are included so farmers can re-activate
// them.
func (r *ProductRepository) ListByFarmer(ctx context.Context, farmerID string, page pagination.Page) ([]domain.Product, int, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			   count(*) OVER() AS total_count
		FROM products
		WHERE farmer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, productColumns)

	rows, err := r.pool.Query(ctx, query, farmerID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list farmer products: %w", err)
	}
	defer rows.Close()

	var (
		products   []domain.Product
		totalCount int
	)

	for rows.Next() {
		var p domain.Product

		if err := rows.Scan(
			&p.ID,
			&p.FarmerID,
			&p.Title,
			&p.CropType,
			&p.Variety,
			&p.QualityGrade,
			&p.PricePerUnit,
			&p.Unit,
			&p.QuantityAvailable,
			&p.IsOrganic,
			&p.HarvestDate,
			&p.AvailableFrom,
			&p.Description,
			&p.Images,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, totalCount, nil
}

// Update modifies an existing listing in the database.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET title = $1, crop_type = $2, variety = $3, quality_grade = $4, price_per_unit = $5,
		    unit = $6, quantity_available = $7, is_organic = $8, harvest_date = $9,
		    available_from = $10, description = $11, images = $12, is_active = $13, updated_at = $14
		WHERE id = $15`

	ct, err := r.pool.Exec(ctx, query,
		p.Title,
		p.CropType,
		p.Variety,
		p.QualityGrade,
		p.PricePerUnit,
		p.Unit,
		p.QuantityAvailable,
		p.IsOrganic,
		p.HarvestDate,
		p.AvailableFrom,
		p.Description,
		p.Images,
		p.IsActive,
		p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", p.ID)
	}

	return nil
}

// Delete removes a listing from the database by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
