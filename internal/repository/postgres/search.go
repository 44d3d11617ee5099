package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// searchColumns is the joined projection scanned into domain.ProductRow.
const searchColumns = `
	p.id, p.farmer_id, p.title, p.crop_type, p.variety, p.quality_grade,
	p.price_per_unit, p.unit, p.quantity_available, p.is_organic,
	p.harvest_date, p.available_from, p.description, p.images, p.created_at,
	f.full_name, f.farm_name, f.is_verified, f.rating, f.latitude, f.longitude, f.certifications,
	s.name AS state_name, l.name AS lga_name`

// SearchRepository implements repository.SearchRepository using PostgreSQL.
type SearchRepository struct {
	pool database.DBTX
}

// NewSearchRepository creates a new PostgreSQL-backed search repository.
func NewSearchRepository(pool database.DBTX) *SearchRepository {
	return &SearchRepository{pool: pool}
}

// Search runs the buyer product search. Filters translate to WHERE
// predicates; only active listings with stock are ever considered. The
// radius filter is intentionally absent from the SQL since distance is
// computed from coordinates after rows are fetched.
func (r *SearchRepository) Search(ctx context.Context, filters domain.SearchFilters, page pagination.Page) ([]domain.ProductRow, int, error) {
	conditions, args := buildSearchConditions(filters, time.Now().UTC())
	argIndex := len(args) + 1

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT %s,
			   count(*) OVER() AS total_count
		FROM products p
		JOIN farmer_profiles f ON f.user_id = p.farmer_id
		LEFT JOIN states s ON s.id = f.state_id
		LEFT JOIN lgas l ON l.id = f.lga_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		searchColumns,
		strings.Join(conditions, " AND "),
		orderClause(filters.SortBy),
		argIndex, argIndex+1,
	)

	args = append(args, page.Limit, page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var (
		results    []domain.ProductRow
		totalCount int
	)

	for rows.Next() {
		var row domain.ProductRow

		if err := rows.Scan(
			&row.ID,
			&row.FarmerID,
			&row.Title,
			&row.CropType,
			&row.Variety,
			&row.QualityGrade,
			&row.PricePerUnit,
			&row.Unit,
			&row.QuantityAvailable,
			&row.IsOrganic,
			&row.HarvestDate,
			&row.AvailableFrom,
			&row.Description,
			&row.Images,
			&row.CreatedAt,
			&row.FarmerName,
			&row.FarmName,
			&row.FarmerVerified,
			&row.FarmerRating,
			&row.FarmerLat,
			&row.FarmerLng,
			&row.Certifications,
			&row.StateName,
			&row.LGAName,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan search row: %w", err)
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate search rows: %w", err)
	}

	if results == nil {
		results = []domain.ProductRow{}
	}

	return results, totalCount, nil
}

// buildSearchConditions translates filters into SQL predicates with
// positional args. The first two predicates are unconditional: buyers only
// ever see active listings with remaining stock.
func buildSearchConditions(filters domain.SearchFilters, now time.Time) ([]string, []any) {
	conditions := []string{"p.is_active = TRUE", "p.quantity_available > 0"}

	var (
		args     []any
		argIndex = 1
	)

	if filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.crop_type ILIKE $%d OR p.variety ILIKE $%d OR p.description ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex,
		))
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}

	if len(filters.CropTypes) > 0 {
		conditions = append(conditions, fmt.Sprintf("p.crop_type = ANY($%d)", argIndex))
		args = append(args, filters.CropTypes)
		argIndex++
	}

	if len(filters.QualityGrades) > 0 {
		conditions = append(conditions, fmt.Sprintf("p.quality_grade = ANY($%d)", argIndex))
		args = append(args, filters.QualityGrades)
		argIndex++
	}

	if filters.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price_per_unit >= $%d", argIndex))
		args = append(args, *filters.MinPrice)
		argIndex++
	}

	if filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.price_per_unit <= $%d", argIndex))
		args = append(args, *filters.MaxPrice)
		argIndex++
	}

	if filters.StateID != nil {
		conditions = append(conditions, fmt.Sprintf("f.state_id = $%d", argIndex))
		args = append(args, *filters.StateID)
		argIndex++
	}

	if filters.LGAID != nil {
		conditions = append(conditions, fmt.Sprintf("f.lga_id = $%d", argIndex))
		args = append(args, *filters.LGAID)
		argIndex++
	}

	if filters.IsOrganic != nil && *filters.IsOrganic {
		conditions = append(conditions, "p.is_organic = TRUE")
	}

	if cutoff, ok := availabilityCutoff(filters.Availability, now); ok {
		conditions = append(conditions, fmt.Sprintf("p.available_from <= $%d", argIndex))
		args = append(args, cutoff)
		argIndex++
	}

	if cutoff, ok := harvestCutoff(filters.HarvestPeriod, now); ok {
		conditions = append(conditions, fmt.Sprintf("p.harvest_date >= $%d", argIndex))
		args = append(args, cutoff)
		argIndex++
	}

	if len(filters.Certifications) > 0 {
		conditions = append(conditions, fmt.Sprintf("f.certifications && $%d", argIndex))
		args = append(args, filters.Certifications)
		argIndex++
	}

	return conditions, args
}

// availabilityCutoff maps an availability window to the latest acceptable
// available_from date.
func availabilityCutoff(availability string, now time.Time) (time.Time, bool) {
	switch availability {
	case domain.AvailabilityNow:
		return now, true
	case domain.AvailabilityWeek:
		return now.AddDate(0, 0, 7), true
	case domain.AvailabilityMonth:
		return now.AddDate(0, 0, 30), true
	default:
		return time.Time{}, false
	}
}

// harvestCutoff maps a harvest recency window to the earliest acceptable
// harvest_date.
func harvestCutoff(period string, now time.Time) (time.Time, bool) {
	switch period {
	case domain.HarvestLast30Days:
		return now.AddDate(0, 0, -30), true
	case domain.HarvestLast3Months:
		return now.AddDate(0, 0, -90), true
	case domain.HarvestLast6Months:
		return now.AddDate(0, 0, -180), true
	default:
		return time.Time{}, false
	}
}

// orderClause maps a sort key to an ORDER BY expression. Distance and
// rating cannot be ordered in SQL without the buyer's coordinates joined
// in, so they fall back to newest-first like the default.
func orderClause(sortBy string) string {
	switch sortBy {
	case domain.SortPriceAsc:
		return "p.price_per_unit ASC"
	case domain.SortPriceDesc:
		return "p.price_per_unit DESC"
	default:
		return "p.created_at DESC"
	}
}
