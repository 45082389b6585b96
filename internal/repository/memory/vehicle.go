package memory

import (
	"context"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// vehicleRepo implements repository.VehicleRepository over tables.
type vehicleRepo struct {
	mu rwLocker
	t  *tables
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.t.vehicles[vehicle.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, v := range r.t.vehicles {
		if v.Plate == vehicle.Plate {
			return repository.ErrDuplicate
		}
	}
	r.t.vehicles[vehicle.ID] = copyVehicle(vehicle)
	return nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.t.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyVehicle(v), nil
}

func (r *vehicleRepo) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.t.vehicles {
		if v.Plate == plate {
			return copyVehicle(v), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *vehicleRepo) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var vehicles []*domain.Vehicle
	for _, id := range sortedIDs(r.t.vehicles) {
		v := r.t.vehicles[id]
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.Type != "" && v.Type != filter.Type {
			continue
		}
		if filter.MinCapacity > 0 && v.Capacity < filter.MinCapacity {
			continue
		}
		vehicles = append(vehicles, copyVehicle(v))
	}
	return vehicles, nil
}

func (r *vehicleRepo) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.t.vehicles[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.Status = status
	return nil
}

func (r *vehicleRepo) UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.t.vehicles[id]
	if !ok || v.Status != from {
		return repository.ErrNotFound
	}
	v.Status = to
	return nil
}
