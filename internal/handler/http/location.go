package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httputil"
)

// LocationHandler serves the states/LGAs and crop catalog reference
// endpoints. These are public and cacheable.
type LocationHandler struct {
	service *service.LocationService
	logger  *slog.Logger
}

// NewLocationHandler creates a new location HTTP handler.
func NewLocationHandler(svc *service.LocationService, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{
		service: svc,
		logger:  logger,
	}
}

// ListStates handles GET /api/v1/locations/states
func (h *LocationHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.service.ListStates(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: states})
}

// ListLGAs handles GET /api/v1/locations/states/{stateId}/lgas
func (h *LocationHandler) ListLGAs(w http.ResponseWriter, r *http.Request) {
	stateID := chi.URLParam(r, "stateId")
	if stateID == "" {
		httputil.WriteInvalidParam(w, "state id is required")
		return
	}

	lgas, err := h.service.ListLGAs(r.Context(), stateID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: lgas})
}

// cropEntry pairs a crop type with its known varieties.
type cropEntry struct {
	Name      string   `json:"name"`
	Varieties []string `json:"varieties"`
}

// ListCrops handles GET /api/v1/crops
// The crop catalog is compiled in, so this never touches a store.
func (h *LocationHandler) ListCrops(w http.ResponseWriter, _ *http.Request) {
	types := domain.CropTypes()
	crops := make([]cropEntry, 0, len(types))
	for _, name := range types {
		crops = append(crops, cropEntry{
			Name:      name,
			Varieties: domain.VarietiesFor(name),
		})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"crops": crops,
		"units": domain.Units(),
	}})
}
