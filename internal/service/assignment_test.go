package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

func TestAssignBindsVehicleAndDriver(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 3)

	result, err := env.assignment.Assign(ctx, trip.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if result.VehicleID != v.ID || result.DriverID != d.ID {
		t.Errorf("result = (%s, %s), want (%s, %s)", result.VehicleID, result.DriverID, v.ID, d.ID)
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusReserved {
		t.Errorf("vehicle status = %s, want RESERVED for a future pickup", gotV.Status)
	}

	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotD.Status != domain.DriverStatusOnTrip {
		t.Errorf("driver status = %s, want ON_TRIP", gotD.Status)
	}
	if gotD.AssignedVehicleID != v.ID {
		t.Errorf("driver assigned vehicle = %q, want %s", gotD.AssignedVehicleID, v.ID)
	}

	gotT, _ := env.store.Trips().GetByID(ctx, trip.ID)
	if gotT.VehicleID != v.ID || gotT.DriverID != d.ID {
		t.Errorf("trip binding = (%s, %s), want (%s, %s)", gotT.VehicleID, gotT.DriverID, v.ID, d.ID)
	}
	if gotT.Status != domain.TripStatusScheduled {
		t.Errorf("trip status = %s, assignment must not advance the trip", gotT.Status)
	}
}

func TestAssignPastPickupPutsVehicleOnTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	env.addDriver(t, "alice")
	trip := env.addTrip(t, time.Now().Add(-time.Minute), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusOnTrip {
		t.Errorf("vehicle status = %s, want ON_TRIP when the window has started", gotV.Status)
	}
}

func TestAssignNoVehicleAvailable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); !errors.Is(err, ErrNoVehicleAvailable) {
		t.Errorf("got %v, want ErrNoVehicleAvailable", err)
	}
}

func TestAssignNoDriverAvailable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); !errors.Is(err, ErrNoDriverAvailable) {
		t.Errorf("got %v, want ErrNoDriverAvailable", err)
	}
}

func TestAssignRespectsCapacity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 2, 50)
	env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 4)

	if _, err := env.assignment.Assign(ctx, trip.ID); !errors.Is(err, ErrNoVehicleAvailable) {
		t.Errorf("got %v, want ErrNoVehicleAvailable for undersized fleet", err)
	}
}

func TestAssignRespectsVehicleTypeConstraint(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	env.addDriver(t, "alice")

	trip, err := env.trips.Create(ctx, CreateTripRequest{
		ClientName:      "Acme Corp",
		PickupLocation:  "HQ",
		DropoffLocation: "Venue",
		PickupAt:        futurePickup(2),
		Passengers:      2,
		VehicleType:     domain.VehicleTypeVan,
	})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}

	if _, err := env.assignment.Assign(ctx, trip.ID); !errors.Is(err, ErrNoVehicleAvailable) {
		t.Errorf("got %v, want ErrNoVehicleAvailable when no vehicle matches the type", err)
	}
}

func TestAssignPrefersCheapestVehicle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-EXPENSIVE", domain.VehicleTypeSedan, 4, 90)
	cheap := env.addVehicle(t, "V-CHEAP", domain.VehicleTypeSedan, 4, 40)
	env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	result, err := env.assignment.Assign(ctx, trip.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if result.VehicleID != cheap.ID {
		t.Errorf("assigned %s, want the cheapest vehicle %s", result.VehicleID, cheap.ID)
	}
}

func TestAssignAlreadyAssigned(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	if _, err := env.assignment.Assign(ctx, trip.ID); !errors.Is(err, ErrAlreadyAssigned) {
		t.Errorf("second Assign: got %v, want ErrAlreadyAssigned", err)
	}
}

func TestAssignUnknownTrip(t *testing.T) {
	env := newTestEnv()

	if _, err := env.assignment.Assign(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestAssignTerminalTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusCancelled, "client cancelled"); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if _, err := env.assignment.Assign(ctx, trip.ID); !errors.Is(err, ErrInvalidTripState) {
		t.Errorf("got %v, want ErrInvalidTripState", err)
	}
}

func TestReleaseRestoresResources(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := env.assignment.Release(ctx, trip.ID); err != nil {
		t.Fatalf("Release: %v", err)
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want AVAILABLE", gotV.Status)
	}
	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotD.Status != domain.DriverStatusAvailable || gotD.AssignedVehicleID != "" {
		t.Errorf("driver = %s/%q, want AVAILABLE with cleared back-reference", gotD.Status, gotD.AssignedVehicleID)
	}
	gotT, _ := env.store.Trips().GetByID(ctx, trip.ID)
	if gotT.VehicleID != "" || gotT.DriverID != "" {
		t.Errorf("trip binding = (%q, %q), want cleared", gotT.VehicleID, gotT.DriverID)
	}
	if gotT.Status != domain.TripStatusScheduled {
		t.Errorf("trip status = %s, release must not change it", gotT.Status)
	}

	// Releasing again is a no-op.
	if err := env.assignment.Release(ctx, trip.ID); err != nil {
		t.Errorf("second Release: %v, want nil", err)
	}

	// The freed pair can be assigned again.
	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Errorf("re-Assign after release: %v", err)
	}
}

func TestBindRefusesVehicleChangedSinceVerify(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	// A status command lands after the engine verified the vehicle free
	// but before its commit. The bind's guarded update must miss rather
	// than overwrite the newer status.
	if err := env.vehicles.SetStatus(ctx, v.ID, domain.VehicleStatusMaintenance); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if err := env.assignment.bind(ctx, trip, v.ID, d.ID); !errors.Is(err, ErrResourceBusy) {
		t.Fatalf("bind against stale vehicle: got %v, want ErrResourceBusy", err)
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusMaintenance {
		t.Errorf("vehicle status = %s, want MAINTENANCE preserved", gotV.Status)
	}
	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotD.Status != domain.DriverStatusAvailable || gotD.AssignedVehicleID != "" {
		t.Errorf("driver = %s/%q, want untouched", gotD.Status, gotD.AssignedVehicleID)
	}
	gotT, _ := env.store.Trips().GetByID(ctx, trip.ID)
	if gotT.Assigned() {
		t.Errorf("trip binding = (%q, %q), want unassigned", gotT.VehicleID, gotT.DriverID)
	}
}

func TestBindRefusesDriverChangedSinceVerify(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if err := env.drivers.SetStatus(ctx, d.ID, domain.DriverStatusOffDuty); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if err := env.assignment.bind(ctx, trip, v.ID, d.ID); !errors.Is(err, ErrResourceBusy) {
		t.Fatalf("bind against stale driver: got %v, want ErrResourceBusy", err)
	}

	// The vehicle update inside the same transaction must roll back.
	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want AVAILABLE after rollback", gotV.Status)
	}
	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotD.Status != domain.DriverStatusOffDuty {
		t.Errorf("driver status = %s, want OFF_DUTY preserved", gotD.Status)
	}
}

func TestAssignRetriesAfterStaleCandidate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addDriver(t, "alice")
	shop := env.addVehicle(t, "V-SHOP", domain.VehicleTypeSedan, 4, 10)
	good := env.addVehicle(t, "V-GOOD", domain.VehicleTypeSedan, 4, 90)
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if err := env.vehicles.SetStatus(ctx, shop.ID, domain.VehicleStatusMaintenance); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	// The cheaper vehicle is in the shop; assignment must land on the
	// remaining one, never on the unavailable candidate.
	result, err := env.assignment.Assign(ctx, trip.ID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if result.VehicleID != good.ID {
		t.Errorf("assigned %s, want %s", result.VehicleID, good.ID)
	}
}

func TestAssignRacingStatusCommand(t *testing.T) {
	ctx := context.Background()

	// An assignment and a maintenance command race for one vehicle.
	// Exactly one side may win each round, and the committed status must
	// be the winner's: RESERVED when the assignment won, MAINTENANCE
	// when the command won. Never both, never a mix.
	for round := 0; round < 200; round++ {
		env := newTestEnv()
		v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
		env.addDriver(t, "alice")
		trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

		var wg sync.WaitGroup
		var assignErr, statusErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, assignErr = env.assignment.Assign(ctx, trip.ID)
		}()
		go func() {
			defer wg.Done()
			statusErr = env.vehicles.SetStatus(ctx, v.ID, domain.VehicleStatusMaintenance)
		}()
		wg.Wait()

		if (assignErr == nil) == (statusErr == nil) {
			t.Fatalf("round %d: assign err = %v, status err = %v, want exactly one winner", round, assignErr, statusErr)
		}

		gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
		if assignErr == nil && gotV.Status != domain.VehicleStatusReserved {
			t.Fatalf("round %d: assignment won but vehicle is %s", round, gotV.Status)
		}
		if statusErr == nil && gotV.Status != domain.VehicleStatusMaintenance {
			t.Fatalf("round %d: maintenance won but vehicle is %s", round, gotV.Status)
		}
	}
}

func TestConcurrentAssignSingleVehicle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	env.addDriver(t, "alice")

	const n = 4
	pickup := futurePickup(2)
	tripIDs := make([]string, n)
	for i := range tripIDs {
		tripIDs[i] = env.addTrip(t, pickup, time.Hour, 2).ID
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.assignment.Assign(ctx, tripIDs[i])
		}(i)
	}
	wg.Wait()

	successes := 0
	for i, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrNoVehicleAvailable),
			errors.Is(err, ErrNoDriverAvailable),
			errors.Is(err, ErrResourceBusy):
			// Acceptable loser outcomes.
		default:
			t.Errorf("trip %d: unexpected error %v", i, err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
}
