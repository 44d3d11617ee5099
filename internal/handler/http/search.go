package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httputil"
)

// SearchHandler handles HTTP requests for the buyer search endpoint.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// Search handles GET /api/v1/search
// @Summary Search produce listings
// @Description Returns paginated listings matching the given filters, with farmer details and optional distance.
// @Tags search
// @Produce json
// @Param q query string false "Text search across title, crop type, variety and description"
// @Param crop_types query string false "Comma-separated crop types"
// @Param quality_grades query string false "Comma-separated quality grades"
// @Param min_price query number false "Minimum price per unit"
// @Param max_price query number false "Maximum price per unit"
// @Param state_id query string false "Filter by farmer state"
// @Param lga_id query string false "Filter by farmer LGA"
// @Param radius query number false "Max distance from buyer in km (1-500, requires buyer coordinates)"
// @Param buyer_lat query number false "Buyer latitude"
// @Param buyer_lng query number false "Buyer longitude"
// @Param sort_by query string false "Sort order" Enums(date,price_asc,price_desc,distance,rating)
// @Success 200 {object} service.SearchResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	filters, err := domain.ParseSearchFilters(r.URL.Query())
	if err != nil {
		httputil.WriteInvalidParam(w, err.Error())
		return
	}

	if result := filters.Validate(); !result.IsValid {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: strings.Join(result.Errors, "; "),
			},
		})
		return
	}

	resp, err := h.service.Search(r.Context(), filters)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
