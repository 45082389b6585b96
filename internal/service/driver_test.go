package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

func TestRegisterDriverValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	cases := []struct {
		name string
		req  RegisterDriverRequest
	}{
		{"missing name", RegisterDriverRequest{Phone: "555", LicenseClass: "B"}},
		{"missing phone", RegisterDriverRequest{Name: "alice", LicenseClass: "B"}},
		{"missing license", RegisterDriverRequest{Name: "alice", Phone: "555"}},
		{"negative experience", RegisterDriverRequest{Name: "alice", Phone: "555", LicenseClass: "B", ExperienceYears: -1}},
	}
	for _, tc := range cases {
		if _, err := env.drivers.Register(ctx, tc.req); !errors.Is(err, ErrInvalidDriver) {
			t.Errorf("%s: got %v, want ErrInvalidDriver", tc.name, err)
		}
	}

	d, err := env.drivers.Register(ctx, RegisterDriverRequest{
		Name:         "alice",
		Phone:        "555-0001",
		LicenseClass: "B",
	})
	if err != nil {
		t.Fatalf("valid request: %v", err)
	}
	if d.Status != domain.DriverStatusAvailable {
		t.Errorf("status = %s, want AVAILABLE", d.Status)
	}

	if _, err := env.drivers.Register(ctx, RegisterDriverRequest{
		Name:         "bob",
		Phone:        "555-0001",
		LicenseClass: "D",
	}); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate phone: got %v, want ErrDuplicate", err)
	}
}

func TestDriverSetStatusWorkflow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	d := env.addDriver(t, "alice")

	if err := env.drivers.SetStatus(ctx, d.ID, domain.DriverStatusOnLeave); err != nil {
		t.Fatalf("to ON_LEAVE: %v", err)
	}
	if err := env.drivers.SetStatus(ctx, d.ID, domain.DriverStatusAvailable); err != nil {
		t.Fatalf("back to AVAILABLE: %v", err)
	}
	if err := env.drivers.SetStatus(ctx, d.ID, domain.DriverStatusOffDuty); err != nil {
		t.Fatalf("to OFF_DUTY: %v", err)
	}

	if err := env.drivers.SetStatus(ctx, d.ID, domain.DriverStatusOnTrip); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("target ON_TRIP: got %v, want ErrInvalidTransition", err)
	}
}

func TestDriverSetStatusRejectsOnTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.addVehicle(t, "V-1", domain.VehicleTypeSedan, 4, 50)
	d := env.addDriver(t, "alice")
	trip := env.addTrip(t, futurePickup(2), time.Hour, 2)
	if _, err := env.assignment.Assign(ctx, trip.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	if err := env.drivers.SetStatus(ctx, d.ID, domain.DriverStatusOffDuty); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("on-trip driver to OFF_DUTY: got %v, want ErrInvalidTransition", err)
	}
}
