package service

import "errors"

var (
	// ErrInvalidVehicle is returned when a vehicle onboarding request is malformed.
	ErrInvalidVehicle = errors.New("invalid vehicle")

	// ErrInvalidDriver is returned when a driver onboarding request is malformed.
	ErrInvalidDriver = errors.New("invalid driver")

	// ErrInvalidTrip is returned when a trip creation request is malformed.
	ErrInvalidTrip = errors.New("invalid trip")

	// ErrInvalidTransition is returned when a requested status change is
	// not allowed by the status state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidTripState is returned when an assignment is attempted on
	// a trip that is not in SCHEDULED state.
	ErrInvalidTripState = errors.New("trip not in scheduled state")

	// ErrAlreadyAssigned is returned when a trip already holds a
	// vehicle/driver binding.
	ErrAlreadyAssigned = errors.New("trip already assigned")

	// ErrNoVehicleAvailable is returned when no vehicle satisfies the
	// capacity, type and availability constraints for a trip window.
	ErrNoVehicleAvailable = errors.New("no vehicle available")

	// ErrNoDriverAvailable is returned when no driver is free for a trip window.
	ErrNoDriverAvailable = errors.New("no driver available")

	// ErrResourceBusy is returned when a per-resource lock could not be
	// acquired within the bounded wait. Safe to retry with backoff.
	ErrResourceBusy = errors.New("resource busy")
)
