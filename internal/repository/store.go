package repository

import "context"

// Store bundles the three repositories behind a single handle and
// provides transactional execution. Implementations: postgres (real
// transactions) and memory (single-writer critical section).
type Store interface {
	Vehicles() VehicleRepository
	Drivers() DriverRepository
	Trips() TripRepository

	// RunInTx executes fn against a transaction-scoped view of the
	// store. All writes performed through the view commit together;
	// if fn returns an error, none of them are observable afterwards.
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}
