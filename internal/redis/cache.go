package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fleet/internal/domain"
)

// CacheStore caches the fleet statistics projection in Redis. The
// projection is always recomputable from store state; the cache only
// shields the read path from repeated full scans. Every mutating
// service invalidates it.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

const (
	fleetStatsKey = "cache:fleet_stats"

	// FleetStatsTTL bounds staleness even if an invalidation is missed.
	FleetStatsTTL = 5 * time.Second
)

// GetFleetStats retrieves the cached stats projection. Returns nil on
// cache miss.
func (s *CacheStore) GetFleetStats(ctx context.Context) (*domain.FleetStats, error) {
	data, err := s.client.Get(ctx, fleetStatsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var stats domain.FleetStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetFleetStats stores the stats projection.
func (s *CacheStore) SetFleetStats(ctx context.Context, stats *domain.FleetStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, fleetStatsKey, data, FleetStatsTTL).Err()
}

// InvalidateFleetStats drops the cached projection.
func (s *CacheStore) InvalidateFleetStats(ctx context.Context) error {
	return s.client.Del(ctx, fleetStatsKey).Err()
}
