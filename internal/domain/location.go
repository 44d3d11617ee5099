package domain

// State is a first-tier Nigerian administrative division.
type State struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LGA is a Local Government Area within a state.
type LGA struct {
	ID      string `json:"id"`
	StateID string `json:"state_id"`
	Name    string `json:"name"`
}

// Coordinates is a lat/lng pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
