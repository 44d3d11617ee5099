package postgres

import (
	"context"
	"fmt"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/database"
)

// LocationRepository implements repository.LocationRepository using PostgreSQL.
type LocationRepository struct {
	pool database.DBTX
}

// NewLocationRepository creates a new PostgreSQL-backed location repository.
func NewLocationRepository(pool database.DBTX) *LocationRepository {
	return &LocationRepository{pool: pool}
}

// ListStates returns all states ordered by name.
func (r *LocationRepository) ListStates(ctx context.Context) ([]domain.State, error) {
	query := `SELECT id, name FROM states ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	var states []domain.State

	for rows.Next() {
		var s domain.State
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan state row: %w", err)
		}
		states = append(states, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state rows: %w", err)
	}

	if states == nil {
		states = []domain.State{}
	}

	return states, nil
}

// ListLGAs returns all local government areas for a state, ordered by name.
func (r *LocationRepository) ListLGAs(ctx context.Context, stateID string) ([]domain.LGA, error) {
	query := `SELECT id, state_id, name FROM lgas WHERE state_id = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, stateID)
	if err != nil {
		return nil, fmt.Errorf("list lgas: %w", err)
	}
	defer rows.Close()

	var lgas []domain.LGA

	for rows.Next() {
		var l domain.LGA
		if err := rows.Scan(&l.ID, &l.StateID, &l.Name); err != nil {
			return nil, fmt.Errorf("scan lga row: %w", err)
		}
		lgas = append(lgas, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lga rows: %w", err)
	}

	if lgas == nil {
		lgas = []domain.LGA{}
	}

	return lgas, nil
}
