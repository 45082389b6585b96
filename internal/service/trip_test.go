package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet/internal/domain"
)

func TestCreateTripValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	valid := CreateTripRequest{
		ClientName:      "Acme Corp",
		PickupLocation:  "HQ",
		DropoffLocation: "Venue",
		PickupAt:        futurePickup(2),
		Passengers:      2,
	}

	cases := []struct {
		name   string
		mutate func(r *CreateTripRequest)
	}{
		{"missing client", func(r *CreateTripRequest) { r.ClientName = "" }},
		{"missing pickup location", func(r *CreateTripRequest) { r.PickupLocation = "" }},
		{"missing dropoff location", func(r *CreateTripRequest) { r.DropoffLocation = "" }},
		{"zero pickup time", func(r *CreateTripRequest) { r.PickupAt = time.Time{} }},
		{"zero passengers", func(r *CreateTripRequest) { r.Passengers = 0 }},
		{"negative price", func(r *CreateTripRequest) { r.Price = -1 }},
		{"negative duration", func(r *CreateTripRequest) { r.Duration = -time.Hour }},
		{"unknown vehicle type", func(r *CreateTripRequest) { r.VehicleType = "HOVERCRAFT" }},
	}

	for _, tc := range cases {
		req := valid
		tc.mutate(&req)
		if _, err := env.trips.Create(ctx, req); !errors.Is(err, ErrInvalidTrip) {
			t.Errorf("%s: got %v, want ErrInvalidTrip", tc.name, err)
		}
	}

	if _, err := env.trips.Create(ctx, valid); err != nil {
		t.Errorf("valid request: %v", err)
	}
}

func TestCreateTripDurations(t *testing.T) {
	env := newTestEnv()
	pickup := futurePickup(2)

	trip := env.addTrip(t, pickup, 0, 2)
	if got := trip.EstimatedEndAt.Sub(trip.PickupAt); got != DefaultTripDuration {
		t.Errorf("default duration = %v, want %v", got, DefaultTripDuration)
	}
	if trip.Status != domain.TripStatusScheduled {
		t.Errorf("status = %s, want SCHEDULED", trip.Status)
	}
	if trip.Assigned() {
		t.Error("new trip must be unassigned")
	}

	trip = env.addTrip(t, pickup, 90*time.Minute, 2)
	if got := trip.EstimatedEndAt.Sub(trip.PickupAt); got != 90*time.Minute {
		t.Errorf("explicit duration = %v, want 90m", got)
	}
}

func TestAdvanceIllegalTransitions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	// SCHEDULED cannot jump straight to COMPLETED.
	if _, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusCompleted, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("scheduled->completed: got %v, want ErrInvalidTransition", err)
	}

	if _, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusCancelled, "no show"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Terminal trips cannot move.
	if _, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusInProgress, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled->in_progress: got %v, want ErrInvalidTransition", err)
	}
}

func TestAdvanceStartMovesVehicleOnTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	updated, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusInProgress, "")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if updated.Status != domain.TripStatusInProgress {
		t.Errorf("trip status = %s, want IN_PROGRESS", updated.Status)
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusOnTrip {
		t.Errorf("vehicle status = %s, want ON_TRIP once the trip starts", gotV.Status)
	}
	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotD.Status != domain.DriverStatusOnTrip {
		t.Errorf("driver status = %s, want ON_TRIP", gotD.Status)
	}
}

func TestCancelReleasesResources(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	updated, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusCancelled, "client cancelled")
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if updated.CancelReason != "client cancelled" {
		t.Errorf("cancel reason = %q", updated.CancelReason)
	}
	if updated.CancelledAt.IsZero() {
		t.Error("cancelled_at not recorded")
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	if gotV.Status != domain.VehicleStatusAvailable {
		t.Errorf("vehicle status = %s, want AVAILABLE after cancel", gotV.Status)
	}
	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotD.Status != domain.DriverStatusAvailable || gotD.AssignedVehicleID != "" {
		t.Errorf("driver = %s/%q, want AVAILABLE with cleared back-reference", gotD.Status, gotD.AssignedVehicleID)
	}
	gotT, _ := env.store.Trips().GetByID(ctx, trip.ID)
	if gotT.VehicleID != "" || gotT.DriverID != "" {
		t.Errorf("trip binding = (%q, %q), want cleared", gotT.VehicleID, gotT.DriverID)
	}
}

func TestCompleteReleasesResources(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	v := env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)

	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusInProgress, ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	updated, err := env.trips.Advance(ctx, trip.ID, domain.TripStatusCompleted, "")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if updated.Status != domain.TripStatusCompleted {
		t.Errorf("trip status = %s, want COMPLETED", updated.Status)
	}

	gotV, _ := env.store.Vehicles().GetByID(ctx, v.ID)
	gotD, _ := env.store.Drivers().GetByID(ctx, d.ID)
	if gotV.Status != domain.VehicleStatusAvailable || gotD.Status != domain.DriverStatusAvailable {
		t.Errorf("resources = %s/%s, want both AVAILABLE after completion", gotV.Status, gotD.Status)
	}
}
