package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(n float64) *float64 { return &n }

func TestNewSearchFilters_Defaults(t *testing.T) {
	f := NewSearchFilters()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, SortDate, f.SortBy)
	assert.Empty(t, f.Query)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.Radius)
	assert.Nil(t, f.IsOrganic)
}

// =============================================================================
// Validate
// =============================================================================

func TestValidate_CleanFilters(t *testing.T) {
	result := NewSearchFilters().Validate()

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}

func TestValidate_PriceRangeInverted(t *testing.T) {
	f := NewSearchFilters()
	f.MinPrice = floatPtr(5000)
	f.MaxPrice = floatPtr(1000)

	result := f.Validate()

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Minimum price cannot be greater than maximum price")
}

func TestValidate_EqualPricesAllowed(t *testing.T) {
	f := NewSearchFilters()
	f.MinPrice = floatPtr(1000)
	f.MaxPrice = floatPtr(1000)

	assert.True(t, f.Validate().IsValid)
}

func TestValidate_RadiusBounds(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		valid  bool
	}{
		{"below minimum", 0.5, false},
		{"at minimum", 1, true},
		{"typical", 50, true},
		{"at maximum", 500, true},
		{"above maximum", 501, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSearchFilters()
			f.Radius = floatPtr(tt.radius)

			result := f.Validate()
			assert.Equal(t, tt.valid, result.IsValid)
			if !tt.valid {
				assert.Contains(t, result.Errors, "Search radius must be between 1 and 500 kilometers")
			}
		})
	}
}

func TestValidate_CoordinateBounds(t *testing.T) {
	f := NewSearchFilters()
	f.BuyerLat = floatPtr(91)
	f.BuyerLng = floatPtr(-181)

	result := f.Validate()

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Invalid latitude value")
	assert.Contains(t, result.Errors, "Invalid longitude value")
}

func TestValidate_AccumulatesAllErrors(t *testing.T) {
	f := NewSearchFilters()
	f.MinPrice = floatPtr(200)
	f.MaxPrice = floatPtr(100)
	f.Radius = floatPtr(1000)
	f.BuyerLat = floatPtr(120)

	result := f.Validate()

	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 3)
}

// =============================================================================
// QueryValues / ParseSearchFilters
// =============================================================================

func TestQueryValues_ClearedFiltersSerializeEmpty(t *testing.T) {
	v := NewSearchFilters().QueryValues()
	assert.Empty(t, v.Encode())
}

func TestQueryValues_DefaultsOmitted(t *testing.T) {
	f := NewSearchFilters()
	f.Query = "rice"
	f.Page = 1           // default, omitted
	f.Limit = 20         // default, omitted
	f.SortBy = SortDate  // default, omitted

	v := f.QueryValues()

	assert.Equal(t, "rice", v.Get("q"))
	assert.Empty(t, v.Get("page"))
	assert.Empty(t, v.Get("limit"))
	assert.Empty(t, v.Get("sort_by"))
}

func TestQueryValues_NonDefaultsIncluded(t *testing.T) {
	f := NewSearchFilters()
	f.Page = 3
	f.Limit = 50
	f.SortBy = SortPriceDesc

	v := f.QueryValues()

	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "50", v.Get("limit"))
	assert.Equal(t, "price_desc", v.Get("sort_by"))
}

func TestFilters_RoundTrip(t *testing.T) {
	f := NewSearchFilters()
	f.Query = "rice"
	f.CropTypes = []string{"Rice", "Maize"}
	f.MinPrice = floatPtr(1000)
	f.MaxPrice = floatPtr(5000)
	f.Radius = floatPtr(50)
	f.BuyerLat = floatPtr(6.5244)
	f.BuyerLng = floatPtr(3.3792)
	f.SortBy = SortPriceAsc

	encoded := f.QueryValues().Encode()
	parsed, err := url.ParseQuery(encoded)
	require.NoError(t, err)

	got, err := ParseSearchFilters(parsed)
	require.NoError(t, err)

	assert.Equal(t, f, got)
}

func TestParseSearchFilters_EmptyQueryYieldsDefaults(t *testing.T) {
	got, err := ParseSearchFilters(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, NewSearchFilters(), got)
}

func TestParseSearchFilters_ListSplitting(t *testing.T) {
	got, err := ParseSearchFilters(url.Values{
		"crop_types": {"Rice, Maize,,Cassava "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Rice", "Maize", "Cassava"}, got.CropTypes)
}

func TestParseSearchFilters_MalformedNumberRejected(t *testing.T) {
	for _, bad := range []string{"abc", "NaN", "Inf", "-Inf"} {
		_, err := ParseSearchFilters(url.Values{"min_price": {bad}})
		require.Error(t, err, "min_price=%s", bad)
		assert.Equal(t, "min_price must be a valid number", err.Error())
	}
}

func TestParseSearchFilters_UnknownEnumRejected(t *testing.T) {
	_, err := ParseSearchFilters(url.Values{"availability": {"tomorrow"}})
	require.Error(t, err)

	_, err = ParseSearchFilters(url.Values{"sort_by": {"alphabetical"}})
	require.Error(t, err)

	_, err = ParseSearchFilters(url.Values{"harvest_date": {"1year"}})
	require.Error(t, err)
}

func TestParseSearchFilters_PageAndLimitBounds(t *testing.T) {
	_, err := ParseSearchFilters(url.Values{"page": {"0"}})
	require.Error(t, err)

	_, err = ParseSearchFilters(url.Values{"limit": {"101"}})
	require.Error(t, err)

	got, err := ParseSearchFilters(url.Values{"page": {"2"}, "limit": {"100"}})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 100, got.Limit)
}

func TestBuyerLocation(t *testing.T) {
	f := NewSearchFilters()
	assert.Nil(t, f.BuyerLocation())

	f.BuyerLat = floatPtr(6.5)
	assert.Nil(t, f.BuyerLocation())

	f.BuyerLng = floatPtr(3.4)
	loc := f.BuyerLocation()
	require.NotNil(t, loc)
	assert.Equal(t, 6.5, loc.Lat)
	assert.Equal(t, 3.4, loc.Lng)
}
