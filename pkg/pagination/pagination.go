package pagination

// Page holds the page/limit pair plus derived offset used by repository queries.
type Page struct {
	Page   int `json:"page"`
	Limit  int `json:"limit"`
	Offset int `json:"-"`
}

// DefaultLimit and MaxLimit bound the page size accepted from clients.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// New normalizes the given page and limit (page >= 1, 1 <= limit <= 100)
// and computes the offset.
func New(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta is the pagination block embedded in list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta builds pagination metadata from the total row count.
func NewMeta(p Page, total int) Meta {
	totalPages := total / p.Limit
	if total%p.Limit > 0 {
		totalPages++
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
