package domain

// Crop type identifiers used across listings and the search filter.
const (
	CropRice      = "Rice"
	CropMaize     = "Maize"
	CropCassava   = "Cassava"
	CropYam       = "Yam"
	CropSorghum   = "Sorghum"
	CropMillet    = "Millet"
	CropCowpea    = "Cowpea"
	CropSoybean   = "Soybean"
	CropGroundnut = "Groundnut"
	CropSesame    = "Sesame"
	CropGinger    = "Ginger"
	CropPepper    = "Pepper"
	CropTomato    = "Tomato"
	CropOnion     = "Onion"
	CropPlantain  = "Plantain"
	CropCocoa     = "Cocoa"
	CropOilPalm   = "Oil Palm"
	CropCashew    = "Cashew"
)

// cropVarieties maps each crop type to its commonly traded varieties.
// Static read-only configuration; the catalog endpoint serves it as-is.
var cropVarieties = map[string][]string{
	CropRice:      {"Ofada", "FARO 44", "FARO 52", "NERICA", "Abakaliki"},
	CropMaize:     {"White Dent", "Yellow Dent", "Suwan-1", "Oba Super 2"},
	CropCassava:   {"TME 419", "TMS 30572", "Pro-Vitamin A"},
	CropYam:       {"Puna", "Water Yam", "White Yam", "Yellow Yam"},
	CropSorghum:   {"Short Kaura", "Farafara", "Samsorg 17"},
	CropMillet:    {"Gero", "Maiwa", "Dauro"},
	CropCowpea:    {"Iron Beans", "Oloyin", "White Beans", "Drum"},
	CropSoybean:   {"TGX 1448", "TGX 1835", "TGX 1904"},
	CropGroundnut: {"Kampala", "Samnut 24", "Samnut 26"},
	CropSesame:    {"White Benniseed", "Brown Benniseed"},
	CropGinger:    {"UG1", "UG2", "Tafin Giwa"},
	CropPepper:    {"Atarodo", "Shombo", "Tatashe", "Bawa"},
	CropTomato:    {"Roma VF", "UC82B", "Derica"},
	CropOnion:     {"Red Creole", "White Onion", "Violet de Galmi"},
	CropPlantain:  {"Agbagba", "French Horn", "False Horn"},
	CropCocoa:     {"Amelonado", "Trinitario", "F3 Amazon"},
	CropOilPalm:   {"Tenera", "Dura", "Pisifera"},
	CropCashew:    {"Jumbo", "Madras", "Brazilian Dwarf"},
}

// CropTypes returns all known crop types in stable (sorted-by-insertion is
// not guaranteed for maps, so an explicit slice is kept) display order.
func CropTypes() []string {
	return []string{
		CropRice, CropMaize, CropCassava, CropYam, CropSorghum, CropMillet,
		CropCowpea, CropSoybean, CropGroundnut, CropSesame, CropGinger,
		CropPepper, CropTomato, CropOnion, CropPlantain, CropCocoa,
		CropOilPalm, CropCashew,
	}
}

// VarietiesFor returns the known varieties for a crop type, or nil for an
// unknown crop.
func VarietiesFor(cropType string) []string {
	return cropVarieties[cropType]
}

// IsValidCropType checks whether the given string is a known crop type.
func IsValidCropType(crop string) bool {
	_, ok := cropVarieties[crop]
	return ok
}

// Units accepted for price-per-unit and quantity fields.
func Units() []string {
	return []string{"kg", "bag", "basket", "tonne", "crate", "bunch", "tuber"}
}

// IsValidUnit checks whether the given string is an accepted unit.
func IsValidUnit(unit string) bool {
	for _, u := range Units() {
		if u == unit {
			return true
		}
	}
	return false
}
