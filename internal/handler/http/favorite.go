package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httputil"
)

// FavoriteHandler handles HTTP requests for buyer favorites.
type FavoriteHandler struct {
	service *service.FavoriteService
	logger  *slog.Logger
}

// NewFavoriteHandler creates a new favorite HTTP handler.
func NewFavoriteHandler(svc *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		service: svc,
		logger:  logger,
	}
}

// ListFavorites handles GET /api/v1/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	items, err := h.service.ListFavorites(r.Context(), user.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: items})
}

// AddFavorite handles POST /api/v1/favorites/{productId}
// Saving a product the buyer already saved returns 409.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	fav, err := h.service.AddFavorite(r.Context(), user.ID, productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: fav})
}

// RemoveFavorite handles DELETE /api/v1/favorites/{productId}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(r.Context(), user.ID, productID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
