package domain

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Sort keys accepted by the search endpoint. Distance and rating are
// accepted and echoed back but the backend orders them by recency; see the
// sort fallback in the repository.
const (
	SortDate      = "date"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortDistance  = "distance"
	SortRating    = "rating"
)

// Availability buckets: a widening upper bound on available_from.
const (
	AvailabilityNow   = "now"
	AvailabilityWeek  = "week"
	AvailabilityMonth = "month"
)

// Harvest-date buckets: a lower bound on harvest_date.
const (
	HarvestLast30Days  = "30days"
	HarvestLast3Months = "3months"
	HarvestLast6Months = "6months"
)

// Search radius bounds in kilometers.
const (
	MinSearchRadiusKm = 1
	MaxSearchRadiusKm = 500
)

// DefaultLimit is the page size applied when the client sends none.
const DefaultLimit = 20

// SearchFilters is the buyer's search criteria, reconstructed per request
// from the query string. It has no identity and is never persisted.
type SearchFilters struct {
	Query          string   `json:"query,omitempty"`
	CropTypes      []string `json:"crop_types,omitempty"`
	QualityGrades  []string `json:"quality_grades,omitempty"`
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
	StateID        *string  `json:"state_id,omitempty"`
	LGAID          *string  `json:"lga_id,omitempty"`
	Radius         *float64 `json:"radius,omitempty"`
	BuyerLat       *float64 `json:"buyer_lat,omitempty"`
	BuyerLng       *float64 `json:"buyer_lng,omitempty"`
	Availability   string   `json:"availability,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	HarvestPeriod  string   `json:"harvest_date,omitempty"`
	IsOrganic      *bool    `json:"is_organic,omitempty"`
	SortBy         string   `json:"sort_by"`
	Page           int      `json:"page"`
	Limit          int      `json:"limit"`
}

// NewSearchFilters returns the cleared filter state: page 1, the default
// page size, and recency sort. Everything else unset.
func NewSearchFilters() SearchFilters {
	return SearchFilters{
		Page:   1,
		Limit:  DefaultLimit,
		SortBy: SortDate,
	}
}

// BuyerLocation returns the buyer coordinates when both are present.
func (f SearchFilters) BuyerLocation() *Coordinates {
	if f.BuyerLat == nil || f.BuyerLng == nil {
		return nil
	}
	return &Coordinates{Lat: *f.BuyerLat, Lng: *f.BuyerLng}
}

// ValidationResult carries the accumulated violations of a filter set.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks filter value ranges and consistency. All violations are
// accumulated; the input is not mutated.
func (f SearchFilters) Validate() ValidationResult {
	var errs []string

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		errs = append(errs, "Minimum price cannot be greater than maximum price")
	}
	if f.Radius != nil && (*f.Radius < MinSearchRadiusKm || *f.Radius > MaxSearchRadiusKm) {
		errs = append(errs, "Search radius must be between 1 and 500 kilometers")
	}
	if f.BuyerLat != nil && (*f.BuyerLat < -90 || *f.BuyerLat > 90) {
		errs = append(errs, "Invalid latitude value")
	}
	if f.BuyerLng != nil && (*f.BuyerLng < -180 || *f.BuyerLng > 180) {
		errs = append(errs, "Invalid longitude value")
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// QueryValues serializes the filters into URL query parameters. Absent,
// empty, and default-valued fields are omitted, so the cleared filter state
// serializes to an empty query string.
func (f SearchFilters) QueryValues() url.Values {
	v := url.Values{}

	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if len(f.CropTypes) > 0 {
		v.Set("crop_types", strings.Join(f.CropTypes, ","))
	}
	if len(f.QualityGrades) > 0 {
		v.Set("quality_grades", strings.Join(f.QualityGrades, ","))
	}
	if f.MinPrice != nil {
		v.Set("min_price", formatFloat(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", formatFloat(*f.MaxPrice))
	}
	if f.StateID != nil {
		v.Set("state_id", *f.StateID)
	}
	if f.LGAID != nil {
		v.Set("lga_id", *f.LGAID)
	}
	if f.Radius != nil {
		v.Set("radius", formatFloat(*f.Radius))
	}
	if f.BuyerLat != nil {
		v.Set("buyer_lat", formatFloat(*f.BuyerLat))
	}
	if f.BuyerLng != nil {
		v.Set("buyer_lng", formatFloat(*f.BuyerLng))
	}
	if f.Availability != "" {
		v.Set("availability", f.Availability)
	}
	if len(f.Certifications) > 0 {
		v.Set("certifications", strings.Join(f.Certifications, ","))
	}
	if f.HarvestPeriod != "" {
		v.Set("harvest_date", f.HarvestPeriod)
	}
	if f.IsOrganic != nil {
		v.Set("is_organic", strconv.FormatBool(*f.IsOrganic))
	}
	if f.SortBy != "" && f.SortBy != SortDate {
		v.Set("sort_by", f.SortBy)
	}
	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 && f.Limit != DefaultLimit {
		v.Set("limit", strconv.Itoa(f.Limit))
	}

	return v
}

// ParseSearchFilters rebuilds a SearchFilters from URL query parameters.
// Absent keys leave the field at its cleared value; list fields split on ","
// dropping empty segments. Malformed numeric values and unknown enum values
// are rejected, so nothing non-finite ever reaches the query builder.
func ParseSearchFilters(v url.Values) (SearchFilters, error) {
	f := NewSearchFilters()

	f.Query = strings.TrimSpace(v.Get("q"))
	f.CropTypes = splitList(v.Get("crop_types"))
	f.QualityGrades = splitList(v.Get("quality_grades"))
	f.Certifications = splitList(v.Get("certifications"))

	var err error
	if f.MinPrice, err = parseFloatParam(v, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseFloatParam(v, "max_price"); err != nil {
		return f, err
	}
	if f.Radius, err = parseFloatParam(v, "radius"); err != nil {
		return f, err
	}
	if f.BuyerLat, err = parseFloatParam(v, "buyer_lat"); err != nil {
		return f, err
	}
	if f.BuyerLng, err = parseFloatParam(v, "buyer_lng"); err != nil {
		return f, err
	}

	if s := v.Get("state_id"); s != "" {
		f.StateID = &s
	}
	if s := v.Get("lga_id"); s != "" {
		f.LGAID = &s
	}

	switch avail := v.Get("availability"); avail {
	case "", AvailabilityNow, AvailabilityWeek, AvailabilityMonth:
		f.Availability = avail
	default:
		return f, fmt.Errorf("availability must be one of: now, week, month")
	}

	switch harvest := v.Get("harvest_date"); harvest {
	case "", HarvestLast30Days, HarvestLast3Months, HarvestLast6Months:
		f.HarvestPeriod = harvest
	default:
		return f, fmt.Errorf("harvest_date must be one of: 30days, 3months, 6months")
	}

	if s := v.Get("is_organic"); s != "" {
		organic, parseErr := strconv.ParseBool(s)
		if parseErr != nil {
			return f, fmt.Errorf("is_organic must be a boolean")
		}
		f.IsOrganic = &organic
	}

	switch sortBy := v.Get("sort_by"); sortBy {
	case "":
		// keep recency default
	case SortDate, SortPriceAsc, SortPriceDesc, SortDistance, SortRating:
		f.SortBy = sortBy
	default:
		return f, fmt.Errorf("sort_by must be one of: price_asc, price_desc, distance, rating, date")
	}

	if s := v.Get("page"); s != "" {
		page, parseErr := strconv.Atoi(s)
		if parseErr != nil || page < 1 {
			return f, fmt.Errorf("page must be a positive integer")
		}
		f.Page = page
	}
	if s := v.Get("limit"); s != "" {
		limit, parseErr := strconv.Atoi(s)
		if parseErr != nil || limit < 1 || limit > 100 {
			return f, fmt.Errorf("limit must be an integer between 1 and 100")
		}
		f.Limit = limit
	}

	return f, nil
}

func parseFloatParam(v url.Values, key string) (*float64, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%s must be a valid number", key)
	}
	return &n, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func formatFloat(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
