package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
)

// ProfileRepository implements repository.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	pool database.DBTX
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool database.DBTX) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// GetFarmer retrieves a farmer profile by user ID.
func (r *ProfileRepository) GetFarmer(ctx context.Context, userID string) (*domain.FarmerProfile, error) {
	query := `
		SELECT user_id, full_name, farm_name, phone, state_id, lga_id, latitude, longitude,
			   is_verified, rating, certifications, created_at, updated_at
		FROM farmer_profiles
		WHERE user_id = $1`

	var p domain.FarmerProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.FarmName,
		&p.Phone,
		&p.StateID,
		&p.LGAID,
		&p.Latitude,
		&p.Longitude,
		&p.IsVerified,
		&p.Rating,
		&p.Certifications,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("farmer profile", userID)
		}
		return nil, fmt.Errorf("scan farmer profile: %w", err)
	}

	return &p, nil
}

// UpsertFarmer inserts or updates a farmer profile keyed by user ID.
// Verification status and rating are managed elsewhere and never written
// from the profile form.
func (r *ProfileRepository) UpsertFarmer(ctx context.Context, p *domain.FarmerProfile) error {
	p.UpdatedAt = time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}

	query := `
		INSERT INTO farmer_profiles (user_id, full_name, farm_name, phone, state_id, lga_id,
			latitude, longitude, certifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			farm_name = EXCLUDED.farm_name,
			phone = EXCLUDED.phone,
			state_id = EXCLUDED.state_id,
			lga_id = EXCLUDED.lga_id,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			certifications = EXCLUDED.certifications,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.FullName,
		p.FarmName,
		p.Phone,
		p.StateID,
		p.LGAID,
		p.Latitude,
		p.Longitude,
		p.Certifications,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert farmer profile: %w", err)
	}

	return nil
}

// GetBuyer retrieves a buyer profile by user ID.
func (r *ProfileRepository) GetBuyer(ctx context.Context, userID string) (*domain.BuyerProfile, error) {
	query := `
		SELECT user_id, full_name, phone, state_id, lga_id, latitude, longitude, created_at, updated_at
		FROM buyer_profiles
		WHERE user_id = $1`

	var p domain.BuyerProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.FullName,
		&p.Phone,
		&p.StateID,
		&p.LGAID,
		&p.Latitude,
		&p.Longitude,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("buyer profile", userID)
		}
		return nil, fmt.Errorf("scan buyer profile: %w", err)
	}

	return &p, nil
}

// UpsertBuyer inserts or updates a buyer profile keyed by user ID.
func (r *ProfileRepository) UpsertBuyer(ctx context.Context, p *domain.BuyerProfile) error {
	p.UpdatedAt = time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}

	query := `
		INSERT INTO buyer_profiles (user_id, full_name, phone, state_id, lga_id, latitude, longitude, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			state_id = EXCLUDED.state_id,
			lga_id = EXCLUDED.lga_id,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		p.UserID,
		p.FullName,
		p.Phone,
		p.StateID,
		p.LGAID,
		p.Latitude,
		p.Longitude,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert buyer profile: %w", err)
	}

	return nil
}
