package postgres

import (
	"context"
	"database/sql"

	"fleet/internal/repository"
)

// Store is the PostgreSQL implementation of repository.Store.
type Store struct {
	db *sql.DB
}

// NewStore creates a new PostgreSQL-backed store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Vehicles returns the vehicle repository.
func (s *Store) Vehicles() repository.VehicleRepository {
	return NewVehicleRepository(s.db)
}

// Drivers returns the driver repository.
func (s *Store) Drivers() repository.DriverRepository {
	return NewDriverRepository(s.db)
}

// Trips returns the trip repository.
func (s *Store) Trips() repository.TripRepository {
	return NewTripRepository(s.db)
}

// RunInTx executes fn inside a database transaction. The transaction
// is rolled back if fn returns an error and committed otherwise.
func (s *Store) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&txStore{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// txStore is the transaction-scoped view of the store.
type txStore struct {
	tx *sql.Tx
}

func (s *txStore) Vehicles() repository.VehicleRepository {
	return NewVehicleRepositoryWithTx(s.tx)
}

func (s *txStore) Drivers() repository.DriverRepository {
	return NewDriverRepositoryWithTx(s.tx)
}

func (s *txStore) Trips() repository.TripRepository {
	return NewTripRepositoryWithTx(s.tx)
}

// RunInTx on a transaction view reuses the open transaction.
func (s *txStore) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}
