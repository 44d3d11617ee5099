package domain

import (
	"time"
)

// ProductRow is the raw joined row shape coming back from the search query:
// a product plus its owning farmer's profile and location columns. Farmer
// fields are nullable because the joins are LEFT JOINs; the formatter
// narrows them into a SearchResult exactly once.
type ProductRow struct {
	ID                string
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
	CreatedAt         time.Time

	FarmerID       string
	FarmerName     *string
	FarmName       *string
	FarmerVerified *bool
	FarmerRating   *float64
	FarmerLat      *float64
	FarmerLng      *float64
	Certifications []string
	StateName      *string
	LGAName        *string
}

// FarmerSummary is the flattened farmer block nested in a search result.
type FarmerSummary struct {
	Name       string  `json:"name"`
	FarmName   string  `json:"farmName"`
	IsVerified bool    `json:"isVerified"`
	Rating     float64 `json:"rating"`
	State      string  `json:"state"`
	LGA        string  `json:"lga"`
}

// SearchResult is the read-only listing projection returned to buyers.
// Distance is present only when the buyer supplied coordinates AND the
// farmer has coordinates; otherwise it is omitted entirely.
type SearchResult struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	TitleHighlighted  string        `json:"titleHighlighted,omitempty"`
	CropType          string        `json:"cropType"`
	Variety           string        `json:"variety,omitempty"`
	QualityGrade      string        `json:"qualityGrade"`
	PricePerUnit      float64       `json:"pricePerUnit"`
	Unit              string        `json:"unit"`
	QuantityAvailable float64       `json:"quantityAvailable"`
	IsOrganic         bool          `json:"isOrganic"`
	HarvestDate       *time.Time    `json:"harvestDate,omitempty"`
	AvailableFrom     *time.Time    `json:"availableFrom,omitempty"`
	Description       string        `json:"description,omitempty"`
	Images            []string      `json:"images"`
	Certifications    []string      `json:"certifications"`
	Distance          *float64      `json:"distance,omitempty"`
	Farmer            FarmerSummary `json:"farmer"`
	CreatedAt         time.Time     `json:"createdAt"`
}
