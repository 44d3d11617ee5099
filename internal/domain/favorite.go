package domain

import (
	"time"
)

// Favorite links a buyer to a saved product. The (buyer, product) pair is
// unique; duplicates surface as a conflict.
type Favorite struct {
	BuyerID   string    `json:"buyer_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteItem is a favorites-list entry: the saved product joined with the
// listing card fields the buyer sees.
type FavoriteItem struct {
	Product   Product   `json:"product"`
	FarmName  string    `json:"farm_name,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}
