package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusScheduled  TripStatus = "SCHEDULED"
	TripStatusInProgress TripStatus = "IN_PROGRESS"
	TripStatusCompleted  TripStatus = "COMPLETED"
	TripStatusCancelled  TripStatus = "CANCELLED"
)

// Trip represents a transport booking in the system.
type Trip struct {
	ID              string
	ClientName      string
	EventName       string
	PickupLocation  string
	DropoffLocation string
	PickupAt        time.Time
	EstimatedEndAt  time.Time
	Passengers      int
	Price           float64

	// VehicleType optionally constrains which vehicles may serve the
	// trip. Empty means any type.
	VehicleType VehicleType

	Status TripStatus

	// VehicleID and DriverID are set together by assignment and
	// cleared together by release. Both empty means unassigned.
	VehicleID string
	DriverID  string

	CreatedAt    time.Time
	CancelledAt  time.Time
	CancelReason string
}

// Terminal reports whether the trip is in a terminal status.
func (t *Trip) Terminal() bool {
	return t.Status == TripStatusCompleted || t.Status == TripStatusCancelled
}

// Assigned reports whether the trip holds a vehicle/driver binding.
func (t *Trip) Assigned() bool {
	return t.VehicleID != "" || t.DriverID != ""
}

// Window returns the half-open occupancy window [PickupAt, EstimatedEndAt).
func (t *Trip) Window() Window {
	return Window{Start: t.PickupAt, End: t.EstimatedEndAt}
}
