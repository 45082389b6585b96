package repository

import (
	"context"

	"fleet/internal/domain"
)

// DriverFilter narrows driver listings. Zero values mean "any".
type DriverFilter struct {
	Status       domain.DriverStatus
	LicenseClass string
}

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver. Fails with ErrDuplicate if the phone
	// number is already registered.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetByPhone retrieves a driver by phone number.
	GetByPhone(ctx context.Context, phone string) (*domain.Driver, error)

	// List retrieves drivers matching the filter, ordered by ID.
	List(ctx context.Context, filter DriverFilter) ([]*domain.Driver, error)

	// UpdateStatus updates the status of a driver.
	UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error

	// UpdateAssignment updates the status and vehicle back-reference of
	// a driver in one write. vehicleID may be empty to clear it.
	UpdateAssignment(ctx context.Context, id string, status domain.DriverStatus, vehicleID string) error

	// UpdateAssignmentFrom is UpdateAssignment guarded on the driver
	// still holding from. Returns ErrNotFound when no driver with the
	// id currently holds from.
	UpdateAssignmentFrom(ctx context.Context, id string, from, to domain.DriverStatus, vehicleID string) error
}
