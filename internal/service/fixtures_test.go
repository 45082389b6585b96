package service

import (
	"context"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository/memory"
)

// testEnv wires the services against the in-memory store and lock store.
type testEnv struct {
	store        *memory.Store
	locks        *memory.LockStore
	availability *AvailabilityService
	vehicles     *VehicleService
	drivers      *DriverService
	trips        *TripService
	assignment   *AssignmentService
	stats        *StatsService
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	locks := memory.NewLockStore()
	availability := NewAvailabilityService(store)
	return &testEnv{
		store:        store,
		locks:        locks,
		availability: availability,
		vehicles:     NewVehicleService(store, nil),
		drivers:      NewDriverService(store, nil),
		trips:        NewTripService(store, locks, nil, 0),
		assignment:   NewAssignmentService(store, locks, nil, availability),
		stats:        NewStatsService(store, nil),
	}
}

func (e *testEnv) addVehicle(t *testing.T, plate string, typ domain.VehicleType, capacity int, hourlyRate float64) *domain.Vehicle {
	t.Helper()
	v, err := e.vehicles.Register(context.Background(), RegisterVehicleRequest{
		Plate:      plate,
		Type:       typ,
		Capacity:   capacity,
		HourlyRate: hourlyRate,
		DailyRate:  hourlyRate * 8,
	})
	if err != nil {
		t.Fatalf("register vehicle %s: %v", plate, err)
	}
	return v
}

func (e *testEnv) addDriver(t *testing.T, name string) *domain.Driver {
	t.Helper()
	d, err := e.drivers.Register(context.Background(), RegisterDriverRequest{
		Name:         name,
		Phone:        "555-" + name,
		LicenseClass: "B",
	})
	if err != nil {
		t.Fatalf("register driver %s: %v", name, err)
	}
	return d
}

func (e *testEnv) addTrip(t *testing.T, pickupAt time.Time, duration time.Duration, passengers int) *domain.Trip {
	t.Helper()
	trip, err := e.trips.Create(context.Background(), CreateTripRequest{
		ClientName:      "Acme Corp",
		EventName:       "offsite",
		PickupLocation:  "HQ",
		DropoffLocation: "Venue",
		PickupAt:        pickupAt,
		Duration:        duration,
		Passengers:      passengers,
		Price:           120,
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func futurePickup(hours int) time.Time {
	return time.Now().Add(time.Duration(hours) * time.Hour).Truncate(time.Second)
}
