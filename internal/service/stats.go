package service

import (
	"context"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

// StatsService produces the fleet-wide statistics projection. It is a
// pure function of current registry and ledger state: counts are
// recomputed on every call (modulo a short-lived cache), never
// maintained as independent counters.
type StatsService struct {
	store      repository.Store
	cacheStore *redis.CacheStore
}

// NewStatsService creates a new StatsService.
func NewStatsService(store repository.Store, cacheStore *redis.CacheStore) *StatsService {
	return &StatsService{store: store, cacheStore: cacheStore}
}

// FleetStats computes per-status counts for vehicles, drivers and trips.
func (s *StatsService) FleetStats(ctx context.Context) (*domain.FleetStats, error) {
	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetFleetStats(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.store.Vehicles().List(ctx, repository.VehicleFilter{})
	if err != nil {
		return nil, err
	}
	drivers, err := s.store.Drivers().List(ctx, repository.DriverFilter{})
	if err != nil {
		return nil, err
	}
	trips, err := s.store.Trips().List(ctx, repository.TripFilter{})
	if err != nil {
		return nil, err
	}

	stats := &domain.FleetStats{
		TotalVehicles: len(vehicles),
		TotalDrivers:  len(drivers),
		TotalTrips:    len(trips),
	}

	for _, v := range vehicles {
		switch v.Status {
		case domain.VehicleStatusAvailable:
			stats.AvailableVehicles++
		case domain.VehicleStatusReserved:
			stats.ReservedVehicles++
		case domain.VehicleStatusOnTrip:
			stats.OnTripVehicles++
		case domain.VehicleStatusMaintenance:
			stats.MaintenanceVehicles++
		case domain.VehicleStatusOutOfService:
			stats.OutOfServiceVehicles++
		}
	}

	for _, d := range drivers {
		switch d.Status {
		case domain.DriverStatusAvailable:
			stats.AvailableDrivers++
		case domain.DriverStatusOnTrip:
			stats.OnTripDrivers++
		case domain.DriverStatusOffDuty:
			stats.OffDutyDrivers++
		case domain.DriverStatusOnLeave:
			stats.OnLeaveDrivers++
		}
	}

	for _, t := range trips {
		switch t.Status {
		case domain.TripStatusScheduled:
			stats.ScheduledTrips++
		case domain.TripStatusInProgress:
			stats.InProgressTrips++
		case domain.TripStatusCompleted:
			stats.CompletedTrips++
		case domain.TripStatusCancelled:
			stats.CancelledTrips++
		}
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetFleetStats(ctx, stats)
	}

	return stats, nil
}
