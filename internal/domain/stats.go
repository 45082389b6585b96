package domain

// FleetStats is a point-in-time projection of fleet-wide counts. It is
// always derived from current registry/ledger state, never maintained
// incrementally.
type FleetStats struct {
	TotalVehicles        int `json:"total_vehicles"`
	AvailableVehicles    int `json:"available_vehicles"`
	ReservedVehicles     int `json:"reserved_vehicles"`
	OnTripVehicles       int `json:"on_trip_vehicles"`
	MaintenanceVehicles  int `json:"maintenance_vehicles"`
	OutOfServiceVehicles int `json:"out_of_service_vehicles"`

	TotalDrivers     int `json:"total_drivers"`
	AvailableDrivers int `json:"available_drivers"`
	OnTripDrivers    int `json:"on_trip_drivers"`
	OffDutyDrivers   int `json:"off_duty_drivers"`
	OnLeaveDrivers   int `json:"on_leave_drivers"`

	TotalTrips      int `json:"total_trips"`
	ScheduledTrips  int `json:"scheduled_trips"`
	InProgressTrips int `json:"in_progress_trips"`
	CompletedTrips  int `json:"completed_trips"`
	CancelledTrips  int `json:"cancelled_trips"`
}
