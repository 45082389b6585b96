package repository

import (
	"context"

	"fleet/internal/domain"
)

// VehicleFilter narrows vehicle listings. Zero values mean "any".
type VehicleFilter struct {
	Status      domain.VehicleStatus
	Type        domain.VehicleType
	MinCapacity int
}

// VehicleRepository defines the persistence operations for vehicles.
type VehicleRepository interface {
	// Create adds a new vehicle. Fails with ErrDuplicate if the plate
	// is already registered.
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID retrieves a vehicle by ID.
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)

	// GetByPlate retrieves a vehicle by license plate.
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)

	// List retrieves vehicles matching the filter, ordered by ID.
	List(ctx context.Context, filter VehicleFilter) ([]*domain.Vehicle, error)

	// UpdateStatus updates the status of a vehicle.
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error

	// UpdateStatusFrom updates the status of a vehicle only while it
	// still holds from. Returns ErrNotFound when no vehicle with the id
	// currently holds from.
	UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error
}
