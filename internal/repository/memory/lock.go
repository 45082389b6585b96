package memory

import (
	"context"
	"sync"
	"time"
)

// LockStore is an in-process lock table with the same SetNX-with-TTL
// semantics as the Redis lock store. Used when the engine runs on the
// memory backend (single instance, no Redis required).
type LockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time
}

// NewLockStore creates an empty lock store.
func NewLockStore() *LockStore {
	return &LockStore{locks: make(map[string]time.Time)}
}

func (s *LockStore) acquire(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expiry, ok := s.locks[key]; ok && expiry.After(now) {
		return false
	}
	s.locks[key] = now.Add(ttl)
	return true
}

func (s *LockStore) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
}

// AcquireVehicleLock attempts to acquire a lock for the given vehicle.
func (s *LockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	return s.acquire("lock:vehicle:"+vehicleID, ttl), nil
}

// ReleaseVehicleLock releases the lock for the given vehicle.
func (s *LockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	s.release("lock:vehicle:" + vehicleID)
	return nil
}

// AcquireDriverLock attempts to acquire a lock for the given driver.
func (s *LockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	return s.acquire("lock:driver:"+driverID, ttl), nil
}

// ReleaseDriverLock releases the lock for the given driver.
func (s *LockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	s.release("lock:driver:" + driverID)
	return nil
}

// AcquireTripLock attempts to acquire a lock for the given trip.
func (s *LockStore) AcquireTripLock(ctx context.Context, tripID string, ttl time.Duration) (bool, error) {
	return s.acquire("lock:trip:"+tripID, ttl), nil
}

// ReleaseTripLock releases the lock for the given trip.
func (s *LockStore) ReleaseTripLock(ctx context.Context, tripID string) error {
	s.release("lock:trip:" + tripID)
	return nil
}
