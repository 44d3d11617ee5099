package domain

import (
	"time"
)

// FarmerProfile is the seller-side profile. It owns the geocoordinates used
// for distance ranking and the verification/rating fields shown on listings.
type FarmerProfile struct {
	UserID         string    `json:"user_id"`
	FullName       string    `json:"full_name"`
	FarmName       string    `json:"farm_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	StateID        *string   `json:"state_id,omitempty"`
	LGAID          *string   `json:"lga_id,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	Rating         float64   `json:"rating"`
	Certifications []string  `json:"certifications"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BuyerProfile is the buyer-side profile. Coordinates, when set, act as the
// default search origin.
type BuyerProfile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	StateID   *string   `json:"state_id,omitempty"`
	LGAID     *string   `json:"lga_id,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
