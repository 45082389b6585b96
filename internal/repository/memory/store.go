package memory

import (
	"context"
	"sync"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// Store is an in-memory implementation of repository.Store: maps keyed
// by id behind a single RWMutex. It is the default backend and the one
// the service tests run against.
type Store struct {
	mu sync.RWMutex
	t  tables
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		t: tables{
			vehicles: make(map[string]*domain.Vehicle),
			drivers:  make(map[string]*domain.Driver),
			trips:    make(map[string]*domain.Trip),
		},
	}
}

// Vehicles returns the vehicle repository view of the store.
func (s *Store) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{mu: &s.mu, t: &s.t}
}

// Drivers returns the driver repository view of the store.
func (s *Store) Drivers() repository.DriverRepository {
	return &driverRepo{mu: &s.mu, t: &s.t}
}

// Trips returns the trip repository view of the store.
func (s *Store) Trips() repository.TripRepository {
	return &tripRepo{mu: &s.mu, t: &s.t}
}

// RunInTx executes fn under the store's write lock against a cloned
// view of the tables. The clone is swapped in only when fn succeeds,
// so a failing fn leaves the store untouched.
func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.t.clone()
	tx := &txStore{t: clone}

	if err := fn(tx); err != nil {
		return err
	}

	s.t = *clone
	return nil
}

// txStore is the transaction-scoped view handed to RunInTx callbacks.
// The outer write lock is held for its whole lifetime, so its repos
// skip locking.
type txStore struct {
	t *tables
}

func (s *txStore) Vehicles() repository.VehicleRepository {
	return &vehicleRepo{mu: noLock{}, t: s.t}
}

func (s *txStore) Drivers() repository.DriverRepository {
	return &driverRepo{mu: noLock{}, t: s.t}
}

func (s *txStore) Trips() repository.TripRepository {
	return &tripRepo{mu: noLock{}, t: s.t}
}

// RunInTx on a transaction view just runs fn against the same view.
func (s *txStore) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

// rwLocker abstracts the store mutex so transaction-scoped repos can
// run lock-free under the already-held write lock.
type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type noLock struct{}

func (noLock) Lock()    {}
func (noLock) Unlock()  {}
func (noLock) RLock()   {}
func (noLock) RUnlock() {}
