package memory

import (
	"context"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// driverRepo implements repository.DriverRepository over tables.
type driverRepo struct {
	mu rwLocker
	t  *tables
}

func (r *driverRepo) Create(ctx context.Context, driver *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.t.drivers[driver.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, d := range r.t.drivers {
		if d.Phone == driver.Phone {
			return repository.ErrDuplicate
		}
	}
	r.t.drivers[driver.ID] = copyDriver(driver)
	return nil
}

func (r *driverRepo) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.t.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDriver(d), nil
}

func (r *driverRepo) GetByPhone(ctx context.Context, phone string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.t.drivers {
		if d.Phone == phone {
			return copyDriver(d), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *driverRepo) List(ctx context.Context, filter repository.DriverFilter) ([]*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var drivers []*domain.Driver
	for _, id := range sortedIDs(r.t.drivers) {
		d := r.t.drivers[id]
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.LicenseClass != "" && d.LicenseClass != filter.LicenseClass {
			continue
		}
		drivers = append(drivers, copyDriver(d))
	}
	return drivers, nil
}

func (r *driverRepo) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.t.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Status = status
	return nil
}

func (r *driverRepo) UpdateAssignment(ctx context.Context, id string, status domain.DriverStatus, vehicleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.t.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.Status = status
	d.AssignedVehicleID = vehicleID
	return nil
}

func (r *driverRepo) UpdateAssignmentFrom(ctx context.Context, id string, from, to domain.DriverStatus, vehicleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.t.drivers[id]
	if !ok || d.Status != from {
		return repository.ErrNotFound
	}
	d.Status = to
	d.AssignedVehicleID = vehicleID
	return nil
}
