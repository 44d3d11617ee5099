package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httputil"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/pagination"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/validator"
)

// ProductHandler handles HTTP requests for listing endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateProductRequest is the JSON request body for creating a listing.
type CreateProductRequest struct {
	Title             string     `json:"title" validate:"required,min=1,max=200"`
	CropType          string     `json:"cropType" validate:"required"`
	Variety           string     `json:"variety" validate:"max=100"`
	QualityGrade      string     `json:"qualityGrade" validate:"required,oneof=premium grade_a grade_b grade_c"`
	PricePerUnit      float64    `json:"pricePerUnit" validate:"required,gt=0"`
	Unit              string     `json:"unit" validate:"required"`
	QuantityAvailable float64    `json:"quantityAvailable" validate:"gte=0"`
	IsOrganic         bool       `json:"isOrganic"`
	HarvestDate       *time.Time `json:"harvestDate"`
	AvailableFrom     *time.Time `json:"availableFrom"`
	Description       string     `json:"description" validate:"max=2000"`
	Images            []string   `json:"images" validate:"max=6,dive,url"`
}

// UpdateProductRequest is the JSON request body for updating a listing.
// All fields are optional.
type UpdateProductRequest struct {
	Title             *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Variety           *string    `json:"variety" validate:"omitempty,max=100"`
	QualityGrade      *string    `json:"qualityGrade" validate:"omitempty,oneof=premium grade_a grade_b grade_c"`
	PricePerUnit      *float64   `json:"pricePerUnit" validate:"omitempty,gt=0"`
	Unit              *string    `json:"unit"`
	QuantityAvailable *float64   `json:"quantityAvailable" validate:"omitempty,gte=0"`
	IsOrganic         *bool      `json:"isOrganic"`
	HarvestDate       *time.Time `json:"harvestDate"`
	AvailableFrom     *time.Time `json:"availableFrom"`
	Description       *string    `json:"description" validate:"omitempty,max=2000"`
	Images            []string   `json:"images" validate:"omitempty,max=6,dive,url"`
	IsActive          *bool      `json:"isActive"`
}

// --- Handlers ---

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListMyProducts handles GET /api/v1/products/mine
// Returns the authenticated farmer's own listings, active or not.
func (h *ProductHandler) ListMyProducts(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			httputil.WriteInvalidParam(w, "page must be a valid positive integer")
			return
		}
		page = p
	}

	limit := pagination.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 || l > pagination.MaxLimit {
			httputil.WriteInvalidParam(w, "limit must be a valid integer between 1 and 100")
			return
		}
		limit = l
	}

	products, meta, err := h.service.ListMyProducts(r.Context(), user.ID, page, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"products":   products,
		"pagination": meta,
	}})
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	// Limit request body to 1MB to prevent DoS via large payloads.
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.CreateProductInput{
		Title:             req.Title,
		CropType:          req.CropType,
		Variety:           req.Variety,
		QualityGrade:      req.QualityGrade,
		PricePerUnit:      req.PricePerUnit,
		Unit:              req.Unit,
		QuantityAvailable: req.QuantityAvailable,
		IsOrganic:         req.IsOrganic,
		HarvestDate:       req.HarvestDate,
		AvailableFrom:     req.AvailableFrom,
		Description:       req.Description,
		Images:            req.Images,
	}

	product, err := h.service.CreateProduct(r.Context(), user.ID, input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	input := &service.UpdateProductInput{
		Title:             req.Title,
		Variety:           req.Variety,
		QualityGrade:      req.QualityGrade,
		PricePerUnit:      req.PricePerUnit,
		Unit:              req.Unit,
		QuantityAvailable: req.QuantityAvailable,
		IsOrganic:         req.IsOrganic,
		HarvestDate:       req.HarvestDate,
		AvailableFrom:     req.AvailableFrom,
		Description:       req.Description,
		Images:            req.Images,
		IsActive:          req.IsActive,
	}

	product, err := h.service.UpdateProduct(r.Context(), user.ID, id.String(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(r.Context(), user.ID, id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
