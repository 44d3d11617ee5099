package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/repository"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
)

// ProfileService implements the business logic for farmer and buyer
// profiles.
type ProfileService struct {
	repo   repository.ProfileRepository
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(repo repository.ProfileRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		logger: logger,
	}
}

// FarmerProfileInput holds the editable fields of a farmer profile.
type FarmerProfileInput struct {
	FullName       string
	FarmName       string
	Phone          string
	StateID        *string
	LGAID          *string
	Latitude       *float64
	Longitude      *float64
	Certifications []string
}

// BuyerProfileInput holds the editable fields of a buyer profile.
type BuyerProfileInput struct {
	FullName  string
	Phone     string
	StateID   *string
	LGAID     *string
	Latitude  *float64
	Longitude *float64
}

// GetFarmerProfile retrieves a farmer profile by user ID.
func (s *ProfileService) GetFarmerProfile(ctx context.Context, userID string) (*domain.FarmerProfile, error) {
	profile, err := s.repo.GetFarmer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get farmer profile: %w", err)
	}
	return profile, nil
}

// UpsertFarmerProfile creates or updates the farmer profile for the user.
func (s *ProfileService) UpsertFarmerProfile(ctx context.Context, userID string, input *FarmerProfileInput) (*domain.FarmerProfile, error) {
	if input.FullName == "" {
		return nil, apperrors.InvalidInput("full name is required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	profile := &domain.FarmerProfile{
		UserID:         userID,
		FullName:       input.FullName,
		FarmName:       input.FarmName,
		Phone:          input.Phone,
		StateID:        input.StateID,
		LGAID:          input.LGAID,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Certifications: input.Certifications,
	}

	if profile.Certifications == nil {
		profile.Certifications = []string{}
	}

	if existing, err := s.repo.GetFarmer(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
		profile.IsVerified = existing.IsVerified
		profile.Rating = existing.Rating
	}

	if err := s.repo.UpsertFarmer(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert farmer profile: %w", err)
	}

	s.logger.InfoContext(ctx, "farmer profile saved",
		slog.String("user_id", userID),
	)

	return profile, nil
}

// GetBuyerProfile retrieves a buyer profile by user ID.
func (s *ProfileService) GetBuyerProfile(ctx context.Context, userID string) (*domain.BuyerProfile, error) {
	profile, err := s.repo.GetBuyer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get buyer profile: %w", err)
	}
	return profile, nil
}

// UpsertBuyerProfile creates or updates the buyer profile for the user.
func (s *ProfileService) UpsertBuyerProfile(ctx context.Context, userID string, input *BuyerProfileInput) (*domain.BuyerProfile, error) {
	if input.FullName == "" {
		return nil, apperrors.InvalidInput("full name is required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	profile := &domain.BuyerProfile{
		UserID:    userID,
		FullName:  input.FullName,
		Phone:     input.Phone,
		StateID:   input.StateID,
		LGAID:     input.LGAID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	if existing, err := s.repo.GetBuyer(ctx, userID); err == nil {
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.UpsertBuyer(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert buyer profile: %w", err)
	}

	s.logger.InfoContext(ctx, "buyer profile saved",
		slog.String("user_id", userID),
	)

	return profile, nil
}

// validateCoordinates checks that latitude and longitude are either both
// absent or both present and in range.
func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return apperrors.InvalidInput("latitude and longitude must be provided together")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return apperrors.InvalidInput("latitude must be between -90 and 90")
	}
	if *lng < -180 || *lng > 180 {
		return apperrors.InvalidInput("longitude must be between -180 and 180")
	}
	return nil
}
