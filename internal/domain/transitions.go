package domain

// Status transition tables. A transition is legal iff the target status
// appears in the entry for the current status. Missing statuses (and
// terminal trip statuses) allow no transitions.

var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehicleStatusAvailable:    {VehicleStatusReserved, VehicleStatusOnTrip, VehicleStatusMaintenance, VehicleStatusOutOfService},
	VehicleStatusReserved:     {VehicleStatusOnTrip, VehicleStatusAvailable},
	VehicleStatusOnTrip:       {VehicleStatusAvailable},
	VehicleStatusMaintenance:  {VehicleStatusAvailable, VehicleStatusOutOfService},
	VehicleStatusOutOfService: {VehicleStatusAvailable, VehicleStatusMaintenance},
}

var driverTransitions = map[DriverStatus][]DriverStatus{
	DriverStatusAvailable: {DriverStatusOnTrip, DriverStatusOffDuty, DriverStatusOnLeave},
	DriverStatusOnTrip:    {DriverStatusAvailable},
	DriverStatusOffDuty:   {DriverStatusAvailable, DriverStatusOnLeave},
	DriverStatusOnLeave:   {DriverStatusAvailable, DriverStatusOffDuty},
}

var tripTransitions = map[TripStatus][]TripStatus{
	TripStatusScheduled:  {TripStatusInProgress, TripStatusCancelled},
	TripStatusInProgress: {TripStatusCompleted, TripStatusCancelled},
	TripStatusCompleted:  {},
	TripStatusCancelled:  {},
}

func contains[S ~string](set []S, s S) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionVehicle reports whether a vehicle may move from -> to.
func CanTransitionVehicle(from, to VehicleStatus) bool {
	return contains(vehicleTransitions[from], to)
}

// CanTransitionDriver reports whether a driver may move from -> to.
func CanTransitionDriver(from, to DriverStatus) bool {
	return contains(driverTransitions[from], to)
}

// CanTransitionTrip reports whether a trip may move from -> to.
func CanTransitionTrip(from, to TripStatus) bool {
	return contains(tripTransitions[from], to)
}
