package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/repository"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/geo"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
)

// SearchResponse is the full payload returned for a buyer search.
type SearchResponse struct {
	Products   []domain.SearchResult `json:"products"`
	Pagination pagination.Meta       `json:"pagination"`
	Filters    domain.SearchFilters  `json:"filters"`
}

// SearchService orchestrates buyer product searches.
type SearchService struct {
	repo   repository.SearchRepository
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(repo repository.SearchRepository, logger *slog.Logger) *SearchService {
	return &SearchService{
		repo:   repo,
		logger: logger,
	}
}

// Search runs the full search pipeline: fetch matching rows, flatten them
// into results, compute distances against the buyer's location, then apply
// the radius as a post-filter.
//
// The pagination total reflects the database match count before the radius
// filter. A radius search can therefore report more total matches than it
// returns on the page; pushing the distance computation into the query
// would fix that and is tracked for the PostGIS migration.
func (s *SearchService) Search(ctx context.Context, filters domain.SearchFilters) (*SearchResponse, error) {
	page := pagination.New(filters.Page, filters.Limit)
	filters.Page = page.Page
	filters.Limit = page.Limit

	rows, total, err := s.repo.Search(ctx, filters, page)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	buyerLoc := filters.BuyerLocation()
	results := formatResults(rows, buyerLoc, filters.Query)

	if filters.Radius != nil && buyerLoc != nil {
		results = filterByRadius(results, *filters.Radius)
	}

	s.logger.DebugContext(ctx, "search completed",
		slog.Int("matches", total),
		slog.Int("returned", len(results)),
		slog.String("sort_by", filters.SortBy),
	)

	return &SearchResponse{
		Products:   results,
		Pagination: pagination.NewMeta(page, total),
		Filters:    filters,
	}, nil
}

// formatResults flattens joined rows into API results. Missing farmer
// fields degrade to zero values rather than nulls so clients always see a
// complete farmer block. Distance is only set when both the buyer and the
// farmer have coordinates.
func formatResults(rows []domain.ProductRow, buyerLoc *domain.Coordinates, query string) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(rows))

	for _, row := range rows {
		r := domain.SearchResult{
			ID:                row.ID,
			Title:             row.Title,
			CropType:          row.CropType,
			Variety:           row.Variety,
			QualityGrade:      row.QualityGrade,
			PricePerUnit:      row.PricePerUnit,
			Unit:              row.Unit,
			QuantityAvailable: row.QuantityAvailable,
			IsOrganic:         row.IsOrganic,
			HarvestDate:       row.HarvestDate,
			AvailableFrom:     row.AvailableFrom,
			Description:       row.Description,
			Images:            row.Images,
			Certifications:    row.Certifications,
			CreatedAt:         row.CreatedAt,
			Farmer: domain.FarmerSummary{
				Name:     stringOrEmpty(row.FarmerName),
				FarmName: stringOrEmpty(row.FarmName),
				State:    stringOrEmpty(row.StateName),
				LGA:      stringOrEmpty(row.LGAName),
			},
		}

		if r.Images == nil {
			r.Images = []string{}
		}
		if r.Certifications == nil {
			r.Certifications = []string{}
		}
		if row.FarmerVerified != nil {
			r.Farmer.IsVerified = *row.FarmerVerified
		}
		if row.FarmerRating != nil {
			r.Farmer.Rating = *row.FarmerRating
		}

		if buyerLoc != nil && row.FarmerLat != nil && row.FarmerLng != nil {
			d := geo.Distance(buyerLoc.Lat, buyerLoc.Lng, *row.FarmerLat, *row.FarmerLng)
			r.Distance = &d
		}

		if query != "" {
			r.TitleHighlighted = HighlightSearchTerms(row.Title, query)
		}

		results = append(results, r)
	}

	return results
}

// filterByRadius keeps only results within radiusKm of the buyer. Results
// with no computed distance (farmer has no coordinates) are dropped, since
// they cannot be proven to be within range.
func filterByRadius(results []domain.SearchResult, radiusKm float64) []domain.SearchResult {
	filtered := make([]domain.SearchResult, 0, len(results))

	for _, r := range results {
		if r.Distance == nil {
			continue
		}
		if *r.Distance <= radiusKm {
			filtered = append(filtered, r)
		}
	}

	return filtered
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
