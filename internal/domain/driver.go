package domain

// DriverStatus represents the current status of a driver.
type DriverStatus string

const (
	DriverStatusAvailable DriverStatus = "AVAILABLE"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
	DriverStatusOnLeave   DriverStatus = "ON_LEAVE"
)

// Driver represents a driver in the fleet.
type Driver struct {
	ID              string
	Name            string
	Phone           string
	LicenseClass    string
	ExperienceYears int
	Languages       []string
	Certifications  []string
	Status          DriverStatus

	// AssignedVehicleID is a non-owning back-reference to the vehicle
	// the driver is currently paired with. It is written only by the
	// assignment bind/release paths and is empty whenever the driver
	// has no active trip.
	AssignedVehicleID string
}
