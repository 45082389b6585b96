package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed per-resource locking in Redis. Used in
// multi-instance deployments so two assignment attempts racing for the
// same vehicle or driver cannot both commit.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

func (s *LockStore) acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// AcquireVehicleLock attempts to acquire a lock for the given vehicle.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	return s.acquire(ctx, fmt.Sprintf("lock:vehicle:%s", vehicleID), ttl)
}

// ReleaseVehicleLock releases the lock for the given vehicle.
func (s *LockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	return s.client.Del(ctx, fmt.Sprintf("lock:vehicle:%s", vehicleID)).Err()
}

// AcquireDriverLock attempts to acquire a lock for the given driver.
func (s *LockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	return s.acquire(ctx, fmt.Sprintf("lock:driver:%s", driverID), ttl)
}

// ReleaseDriverLock releases the lock for the given driver.
func (s *LockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	return s.client.Del(ctx, fmt.Sprintf("lock:driver:%s", driverID)).Err()
}

// AcquireTripLock attempts to acquire a lock for the given trip. Held
// during assignment so duplicate attempts for one trip serialize.
func (s *LockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	return s.acquire(ctx, fmt.Sprintf("lock:trip:%s", tripID), ttl)
}

// ReleaseTripLock releases the lock for the given trip.
func (s *LockStore) ReleaseTripLock(ctx context.Context, tripID string) error {
	return s.client.Del(ctx, fmt.Sprintf("lock:trip:%s", tripID)).Err()
}
