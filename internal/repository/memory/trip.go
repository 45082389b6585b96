package memory

import (
	"context"
	"sort"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// tripRepo implements repository.TripRepository over tables.
type tripRepo struct {
	mu rwLocker
	t  *tables
}

func (r *tripRepo) Create(ctx context.Context, trip *domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.t.trips[trip.ID]; ok {
		return repository.ErrDuplicate
	}
	r.t.trips[trip.ID] = copyTrip(trip)
	return nil
}

func (r *tripRepo) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.t.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyTrip(t), nil
}

func (r *tripRepo) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*domain.Trip
	for _, id := range sortedIDs(r.t.trips) {
		t := r.t.trips[id]
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		trips = append(trips, copyTrip(t))
	}
	return trips, nil
}

func (r *tripRepo) Update(ctx context.Context, trip *domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.t.trips[trip.ID]; !ok {
		return repository.ErrNotFound
	}
	r.t.trips[trip.ID] = copyTrip(trip)
	return nil
}

func (r *tripRepo) ListActiveByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*domain.Trip
	for _, t := range r.t.trips {
		if t.VehicleID == vehicleID && !t.Terminal() {
			trips = append(trips, copyTrip(t))
		}
	}
	sortByPickup(trips)
	return trips, nil
}

func (r *tripRepo) ListActiveByDriverID(ctx context.Context, driverID string) ([]*domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*domain.Trip
	for _, t := range r.t.trips {
		if t.DriverID == driverID && !t.Terminal() {
			trips = append(trips, copyTrip(t))
		}
	}
	sortByPickup(trips)
	return trips, nil
}

func sortByPickup(trips []*domain.Trip) {
	sort.Slice(trips, func(i, j int) bool {
		if trips[i].PickupAt.Equal(trips[j].PickupAt) {
			return trips[i].ID < trips[j].ID
		}
		return trips[i].PickupAt.Before(trips[j].PickupAt)
	})
}
