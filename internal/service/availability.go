package service

import (
	"context"
	"sort"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// AvailabilityService answers free/busy queries over the fleet without
// mutating state. A resource is free for a window iff its status is
// AVAILABLE and no non-terminal trip assigned to it overlaps the
// window. Candidate searches are deterministic: sort then iterate, so
// re-running the same query yields the same order.
type AvailabilityService struct {
	store repository.Store
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(store repository.Store) *AvailabilityService {
	return &AvailabilityService{store: store}
}

// IsVehicleFree reports whether the vehicle can serve a trip in window.
func (s *AvailabilityService) IsVehicleFree(ctx context.Context, vehicleID string, window domain.Window) (bool, error) {
	vehicle, err := s.store.Vehicles().GetByID(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return false, nil
	}

	trips, err := s.store.Trips().ListActiveByVehicleID(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	return !anyOverlap(trips, window), nil
}

// IsDriverFree reports whether the driver can serve a trip in window.
func (s *AvailabilityService) IsDriverFree(ctx context.Context, driverID string, window domain.Window) (bool, error) {
	driver, err := s.store.Drivers().GetByID(ctx, driverID)
	if err != nil {
		return false, err
	}
	if driver.Status != domain.DriverStatusAvailable {
		return false, nil
	}

	trips, err := s.store.Trips().ListActiveByDriverID(ctx, driverID)
	if err != nil {
		return false, err
	}
	return !anyOverlap(trips, window), nil
}

// FindCandidateVehicles returns the IDs of vehicles that satisfy the
// capacity/type constraints and are free for the window, ordered by
// ascending hourly rate, then by ID.
func (s *AvailabilityService) FindCandidateVehicles(ctx context.Context, window domain.Window, minCapacity int, vehicleType domain.VehicleType) ([]string, error) {
	vehicles, err := s.store.Vehicles().List(ctx, repository.VehicleFilter{
		Status:      domain.VehicleStatusAvailable,
		Type:        vehicleType,
		MinCapacity: minCapacity,
	})
	if err != nil {
		return nil, err
	}

	var candidates []*domain.Vehicle
	for _, v := range vehicles {
		trips, err := s.store.Trips().ListActiveByVehicleID(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		if anyOverlap(trips, window) {
			continue
		}
		candidates = append(candidates, v)
	}

	// Cost-minimizing default: cheapest hourly rate first, ID as the
	// deterministic tie-break.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].HourlyRate != candidates[j].HourlyRate {
			return candidates[i].HourlyRate < candidates[j].HourlyRate
		}
		return candidates[i].ID < candidates[j].ID
	})

	ids := make([]string, len(candidates))
	for i, v := range candidates {
		ids[i] = v.ID
	}
	return ids, nil
}

// FindCandidateDrivers returns the IDs of drivers free for the window,
// optionally filtered by license class, ordered by ID.
func (s *AvailabilityService) FindCandidateDrivers(ctx context.Context, window domain.Window, licenseClass string) ([]string, error) {
	drivers, err := s.store.Drivers().List(ctx, repository.DriverFilter{
		Status:       domain.DriverStatusAvailable,
		LicenseClass: licenseClass,
	})
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, d := range drivers {
		trips, err := s.store.Trips().ListActiveByDriverID(ctx, d.ID)
		if err != nil {
			return nil, err
		}
		if anyOverlap(trips, window) {
			continue
		}
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// anyOverlap reports whether any trip's occupancy window intersects
// window. Terminal trips never reach here: the repository active
// listings already exclude them.
func anyOverlap(trips []*domain.Trip, window domain.Window) bool {
	for _, t := range trips {
		if t.Window().Overlaps(window) {
			return true
		}
	}
	return false
}
