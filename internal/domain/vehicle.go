package domain

// VehicleStatus represents the current status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable    VehicleStatus = "AVAILABLE"
	VehicleStatusReserved     VehicleStatus = "RESERVED"
	VehicleStatusOnTrip       VehicleStatus = "ON_TRIP"
	VehicleStatusMaintenance  VehicleStatus = "MAINTENANCE"
	VehicleStatusOutOfService VehicleStatus = "OUT_OF_SERVICE"
)

// VehicleType represents the body class of a vehicle.
type VehicleType string

const (
	VehicleTypeSedan     VehicleType = "SEDAN"
	VehicleTypeSUV       VehicleType = "SUV"
	VehicleTypeVan       VehicleType = "VAN"
	VehicleTypeMinibus   VehicleType = "MINIBUS"
	VehicleTypeBus       VehicleType = "BUS"
	VehicleTypeLimousine VehicleType = "LIMOUSINE"
	VehicleTypeSprinter  VehicleType = "SPRINTER"
)

// FuelType represents the fuel a vehicle runs on.
type FuelType string

const (
	FuelTypePetrol   FuelType = "PETROL"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeHybrid   FuelType = "HYBRID"
	FuelTypeElectric FuelType = "ELECTRIC"
)

// Vehicle represents a vehicle in the fleet.
type Vehicle struct {
	ID         string
	Plate      string
	Type       VehicleType
	Capacity   int
	Fuel       FuelType
	Features   []string
	HourlyRate float64
	DailyRate  float64
	Status     VehicleStatus
}

// Assigned reports whether the vehicle is currently bound to a trip.
func (v *Vehicle) Assigned() bool {
	return v.Status == VehicleStatusReserved || v.Status == VehicleStatusOnTrip
}
