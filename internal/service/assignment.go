package service

import (
	"context"
	"errors"
	"time"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

const (
	vehicleLockTTL = 10 * time.Second
	driverLockTTL  = 10 * time.Second
	tripLockTTL    = 30 * time.Second

	// Assignment retries a bounded number of times on lock contention
	// before surfacing ErrResourceBusy to the caller.
	assignMaxAttempts  = 3
	assignRetryBackoff = 50 * time.Millisecond
)

// AssignmentService binds one vehicle and one driver to a scheduled
// trip, or releases an existing binding. Binding is atomic: the vehicle
// status, the driver status plus back-reference, and the trip's
// vehicle/driver IDs commit as one unit, guarded by per-resource locks
// so concurrent attempts cannot double-book a resource.
type AssignmentService struct {
	store        repository.Store
	lockStore    redis.LockStoreInterface
	cacheStore   *redis.CacheStore
	availability *AvailabilityService
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	store repository.Store,
	lockStore redis.LockStoreInterface,
	cacheStore *redis.CacheStore,
	availability *AvailabilityService,
) *AssignmentService {
	return &AssignmentService{
		store:        store,
		lockStore:    lockStore,
		cacheStore:   cacheStore,
		availability: availability,
	}
}

// AssignmentResult contains the binding produced by a successful assignment.
type AssignmentResult struct {
	VehicleID string
	DriverID  string
	Trip      *domain.Trip
}

// Assign selects and binds a (vehicle, driver) pair for the trip,
// retrying with backoff when a lock is contended.
func (s *AssignmentService) Assign(ctx context.Context, tripID string) (*AssignmentResult, error) {
	var lastErr error
	for attempt := 0; attempt < assignMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(assignRetryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := s.tryAssign(ctx, tripID)
		if errors.Is(err, ErrResourceBusy) {
			lastErr = err
			continue
		}
		return result, err
	}
	return nil, lastErr
}

// tryAssign performs a single assignment attempt.
func (s *AssignmentService) tryAssign(ctx context.Context, tripID string) (*AssignmentResult, error) {
	// Lock the trip first so duplicate attempts for it serialize.
	locked, err := s.lockStore.AcquireTripLock(ctx, tripID, tripLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrResourceBusy
	}
	defer func() { _ = s.lockStore.ReleaseTripLock(ctx, tripID) }()

	trip, err := s.store.Trips().GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Assigned() {
		return nil, ErrAlreadyAssigned
	}
	if trip.Status != domain.TripStatusScheduled {
		return nil, ErrInvalidTripState
	}

	window := trip.Window()

	vehicleIDs, err := s.availability.FindCandidateVehicles(ctx, window, trip.Passengers, trip.VehicleType)
	if err != nil {
		return nil, err
	}
	if len(vehicleIDs) == 0 {
		return nil, ErrNoVehicleAvailable
	}

	driverIDs, err := s.availability.FindCandidateDrivers(ctx, window, "")
	if err != nil {
		return nil, err
	}
	if len(driverIDs) == 0 {
		return nil, ErrNoDriverAvailable
	}

	vehicleID, err := s.lockFreeVehicle(ctx, vehicleIDs, window)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.lockStore.ReleaseVehicleLock(ctx, vehicleID) }()

	driverID, err := s.lockFreeDriver(ctx, driverIDs, window)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.lockStore.ReleaseDriverLock(ctx, driverID) }()

	if err := s.bind(ctx, trip, vehicleID, driverID); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	return &AssignmentResult{
		VehicleID: vehicleID,
		DriverID:  driverID,
		Trip:      trip,
	}, nil
}

// lockFreeVehicle walks the candidates in order, locks the first one
// that is still free, and returns its ID. Candidates whose lock is
// contended are skipped; candidates that went stale between the query
// and the lock are unlocked and skipped.
func (s *AssignmentService) lockFreeVehicle(ctx context.Context, candidates []string, window domain.Window) (string, error) {
	contended := false
	for _, id := range candidates {
		locked, err := s.lockStore.AcquireVehicleLock(ctx, id, vehicleLockTTL)
		if err != nil {
			return "", err
		}
		if !locked {
			contended = true
			continue
		}

		// Re-verify under the lock: another assignment may have taken
		// the vehicle after the candidate query.
		free, err := s.availability.IsVehicleFree(ctx, id, window)
		if err != nil {
			_ = s.lockStore.ReleaseVehicleLock(ctx, id)
			return "", err
		}
		if !free {
			_ = s.lockStore.ReleaseVehicleLock(ctx, id)
			continue
		}
		return id, nil
	}

	if contended {
		return "", ErrResourceBusy
	}
	return "", ErrNoVehicleAvailable
}

func (s *AssignmentService) lockFreeDriver(ctx context.Context, candidates []string, window domain.Window) (string, error) {
	contended := false
	for _, id := range candidates {
		locked, err := s.lockStore.AcquireDriverLock(ctx, id, driverLockTTL)
		if err != nil {
			return "", err
		}
		if !locked {
			contended = true
			continue
		}

		free, err := s.availability.IsDriverFree(ctx, id, window)
		if err != nil {
			_ = s.lockStore.ReleaseDriverLock(ctx, id)
			return "", err
		}
		if !free {
			_ = s.lockStore.ReleaseDriverLock(ctx, id)
			continue
		}
		return id, nil
	}

	if contended {
		return "", ErrResourceBusy
	}
	return "", ErrNoDriverAvailable
}

// bind commits the three-way binding as one transaction. The vehicle is
// RESERVED for a future window and ON_TRIP when the window has already
// started; the driver always goes ON_TRIP with its back-reference set.
// Both writes are conditional on the resource still being AVAILABLE: a
// status command that commits between the re-verify and this
// transaction makes the guarded update miss, and the bind aborts as
// busy instead of overwriting the newer status. The retry loop then
// re-runs the candidate search.
func (s *AssignmentService) bind(ctx context.Context, trip *domain.Trip, vehicleID, driverID string) error {
	vehicleStatus := domain.VehicleStatusReserved
	if !trip.PickupAt.After(time.Now()) {
		vehicleStatus = domain.VehicleStatusOnTrip
	}

	return s.store.RunInTx(ctx, func(tx repository.Store) error {
		if err := tx.Vehicles().UpdateStatusFrom(ctx, vehicleID, domain.VehicleStatusAvailable, vehicleStatus); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrResourceBusy
			}
			return err
		}
		if err := tx.Drivers().UpdateAssignmentFrom(ctx, driverID, domain.DriverStatusAvailable, domain.DriverStatusOnTrip, vehicleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrResourceBusy
			}
			return err
		}
		trip.VehicleID = vehicleID
		trip.DriverID = driverID
		return tx.Trips().Update(ctx, trip)
	})
}

// Release reverses an assignment: the vehicle and driver return to
// AVAILABLE and the trip's binding is cleared. Releasing an unassigned
// trip is a no-op, so the operation is idempotent.
func (s *AssignmentService) Release(ctx context.Context, tripID string) error {
	locked, err := s.lockStore.AcquireTripLock(ctx, tripID, tripLockTTL)
	if err != nil {
		return err
	}
	if !locked {
		return ErrResourceBusy
	}
	defer func() { _ = s.lockStore.ReleaseTripLock(ctx, tripID) }()

	err = s.store.RunInTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, tripID)
		if err != nil {
			return err
		}
		if !trip.Assigned() {
			return nil
		}
		return releaseResources(ctx, tx, trip)
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

// releaseResources is the single mutation path that undoes a binding:
// vehicle back to AVAILABLE, driver back to AVAILABLE with the
// back-reference cleared, trip IDs cleared. Callers run it inside a
// transaction; the trip's status field is written as the caller left it.
func releaseResources(ctx context.Context, tx repository.Store, trip *domain.Trip) error {
	if trip.VehicleID != "" {
		if err := tx.Vehicles().UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return err
		}
	}
	if trip.DriverID != "" {
		if err := tx.Drivers().UpdateAssignment(ctx, trip.DriverID, domain.DriverStatusAvailable, ""); err != nil {
			return err
		}
	}
	trip.VehicleID = ""
	trip.DriverID = ""
	return tx.Trips().Update(ctx, trip)
}

func (s *AssignmentService) invalidateStats(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateFleetStats(ctx)
}
