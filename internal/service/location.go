package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/domain"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/internal/repository"
)

const (
	statesCacheKey = "ref:states"
	lgasKeyPrefix  = "ref:lgas:"
)

// DefaultReferenceTTL is how long states/LGAs stay cached. The tables
// change on the order of years, so a day is conservative.
const DefaultReferenceTTL = 24 * time.Hour

// LocationService serves the states/LGAs reference data through a Redis
// read-through cache. A nil Redis client disables caching entirely.
type LocationService struct {
	repo   repository.LocationRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewLocationService creates a new location service.
func NewLocationService(repo repository.LocationRepository, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *LocationService {
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}
	return &LocationService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// ListStates returns all states, serving from cache when possible.
func (s *LocationService) ListStates(ctx context.Context) ([]domain.State, error) {
	var states []domain.State
	if s.cacheGet(ctx, statesCacheKey, &states) {
		return states, nil
	}

	states, err := s.repo.ListStates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}

	s.cacheSet(ctx, statesCacheKey, states)
	return states, nil
}

// ListLGAs returns the local government areas for a state, serving from
// cache when possible.
func (s *LocationService) ListLGAs(ctx context.Context, stateID string) ([]domain.LGA, error) {
	key := lgasKeyPrefix + stateID

	var lgas []domain.LGA
	if s.cacheGet(ctx, key, &lgas) {
		return lgas, nil
	}

	lgas, err := s.repo.ListLGAs(ctx, stateID)
	if err != nil {
		return nil, fmt.Errorf("list lgas: %w", err)
	}

	s.cacheSet(ctx, key, lgas)
	return lgas, nil
}

// cacheGet reports whether the key was found and decoded. Cache errors are
// logged and treated as misses so the database remains the fallback.
func (s *LocationService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WarnContext(ctx, "reference cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.WarnContext(ctx, "reference cache entry corrupt",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}

	return true
}

func (s *LocationService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "reference cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
