package repository

import (
	"context"

	"fleet/internal/domain"
)

// TripFilter narrows trip listings. Zero values mean "any".
type TripFilter struct {
	Status domain.TripStatus
}

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// List retrieves trips matching the filter, ordered by ID.
	List(ctx context.Context, filter TripFilter) ([]*domain.Trip, error)

	// Update updates an existing trip.
	Update(ctx context.Context, trip *domain.Trip) error

	// ListActiveByVehicleID retrieves the non-terminal trips assigned
	// to a vehicle, ordered by pickup time.
	ListActiveByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Trip, error)

	// ListActiveByDriverID retrieves the non-terminal trips assigned to
	// a driver, ordered by pickup time.
	ListActiveByDriverID(ctx context.Context, driverID string) ([]*domain.Trip, error)
}
