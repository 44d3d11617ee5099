package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/auth"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/service"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httputil"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/validator"
)

// ProfileHandler handles HTTP requests for farmer and buyer profiles.
type ProfileHandler struct {
	service *service.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile HTTP handler.
func NewProfileHandler(svc *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: svc,
		logger:  logger,
	}
}

// FarmerProfileRequest is the JSON request body for saving a farmer profile.
type FarmerProfileRequest struct {
	FullName       string   `json:"fullName" validate:"required,min=1,max=200"`
	FarmName       string   `json:"farmName" validate:"max=200"`
	Phone          string   `json:"phone" validate:"max=20"`
	StateID        *string  `json:"stateId" validate:"omitempty,max=50"`
	LGAID          *string  `json:"lgaId" validate:"omitempty,max=50"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	Certifications []string `json:"certifications" validate:"max=10,dive,max=100"`
}

// BuyerProfileRequest is the JSON request body for saving a buyer profile.
type BuyerProfileRequest struct {
	FullName  string   `json:"fullName" validate:"required,min=1,max=200"`
	Phone     string   `json:"phone" validate:"max=20"`
	StateID   *string  `json:"stateId" validate:"omitempty,max=50"`
	LGAID     *string  `json:"lgaId" validate:"omitempty,max=50"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// GetFarmerProfile handles GET /api/v1/profiles/farmer
func (h *ProfileHandler) GetFarmerProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	profile, err := h.service.GetFarmerProfile(r.Context(), user.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// SaveFarmerProfile handles PUT /api/v1/profiles/farmer
func (h *ProfileHandler) SaveFarmerProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req FarmerProfileRequest
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

	profile, err := h.service.UpsertFarmerProfile(r.Context(), user.ID, &service.FarmerProfileInput{
		FullName:       req.FullName,
		FarmName:       req.FarmName,
		Phone:          req.Phone,
		StateID:        req.StateID,
		LGAID:          req.LGAID,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Certifications: req.Certifications,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// GetBuyerProfile handles GET /api/v1/profiles/buyer
func (h *ProfileHandler) GetBuyerProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	profile, err := h.service.GetBuyerProfile(r.Context(), user.ID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}

// SaveBuyerProfile handles PUT /api/v1/profiles/buyer
func (h *ProfileHandler) SaveBuyerProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req BuyerProfileRequest
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

	profile, err := h.service.UpsertBuyerProfile(r.Context(), user.ID, &service.BuyerProfileInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		StateID:   req.StateID,
		LGAID:     req.LGAID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: profile})
}
