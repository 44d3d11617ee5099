package domain

import (
	"time"
)

// Quality grade tiers for a listing.
const (
	GradePremium = "premium"
	GradeA       = "grade_a"
	GradeB       = "grade_b"
	GradeC       = "grade_c"
)

// QualityGrades returns the set of valid quality grades.
func QualityGrades() []string {
	return []string{GradePremium, GradeA, GradeB, GradeC}
}

// IsValidQualityGrade checks whether the given string is a valid quality grade.
func IsValidQualityGrade(grade string) bool {
	for _, g := range QualityGrades() {
		if g == grade {
			return true
		}
	}
	return false
}

// Product is a farmer's crop listing.
type Product struct {
	ID                string     `json:"id"`
	FarmerID          string     `json:"farmer_id"`
	Title             string     `json:"title"`
	CropType          string     `json:"crop_type"`
	Variety           string     `json:"variety,omitempty"`
	QualityGrade      string     `json:"quality_grade"`
	PricePerUnit      float64    `json:"price_per_unit"`
	Unit              string     `json:"unit"`
	QuantityAvailable float64    `json:"quantity_available"`
	IsOrganic         bool       `json:"is_organic"`
	HarvestDate       *time.Time `json:"harvest_date,omitempty"`
	AvailableFrom     *time.Time `json:"available_from,omitempty"`
	Description       string     `json:"description,omitempty"`
	Images            []string   `json:"images"`
	IsActive          bool       `json:"is_active"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
