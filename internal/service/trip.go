package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

// DefaultTripDuration is the policy fallback used to derive a trip's
// estimated end when the booking does not supply a duration.
const DefaultTripDuration = 2 * time.Hour

// TripService handles the trip ledger: creation, lifecycle transitions
// and read access. Trips are never deleted; terminal trips stay on the
// ledger for history and statistics.
type TripService struct {
	store           repository.Store
	lockStore       redis.LockStoreInterface
	cacheStore      *redis.CacheStore
	defaultDuration time.Duration
}

// NewTripService creates a new TripService. defaultDuration <= 0 falls
// back to DefaultTripDuration.
func NewTripService(store repository.Store, lockStore redis.LockStoreInterface, cacheStore *redis.CacheStore, defaultDuration time.Duration) *TripService {
	if defaultDuration <= 0 {
		defaultDuration = DefaultTripDuration
	}
	return &TripService{
		store:           store,
		lockStore:       lockStore,
		cacheStore:      cacheStore,
		defaultDuration: defaultDuration,
	}
}

// CreateTripRequest contains the parameters for creating a trip.
type CreateTripRequest struct {
	ClientName      string
	EventName       string
	PickupLocation  string
	DropoffLocation string
	PickupAt        time.Time
	Duration        time.Duration // 0 means policy default
	Passengers      int
	Price           float64
	VehicleType     domain.VehicleType // optional constraint
}

// Create validates the booking request and records a new trip in
// SCHEDULED status, unassigned.
func (s *TripService) Create(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.ClientName == "" || req.PickupLocation == "" || req.DropoffLocation == "" {
		return nil, ErrInvalidTrip
	}
	if req.PickupAt.IsZero() || req.Passengers <= 0 || req.Price < 0 || req.Duration < 0 {
		return nil, ErrInvalidTrip
	}
	if req.VehicleType != "" && !validVehicleTypes[req.VehicleType] {
		return nil, ErrInvalidTrip
	}

	duration := req.Duration
	if duration == 0 {
		duration = s.defaultDuration
	}

	trip := &domain.Trip{
		ID:              uuid.New().String(),
		ClientName:      req.ClientName,
		EventName:       req.EventName,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		PickupAt:        req.PickupAt,
		EstimatedEndAt:  req.PickupAt.Add(duration),
		Passengers:      req.Passengers,
		Price:           req.Price,
		VehicleType:     req.VehicleType,
		Status:          domain.TripStatusScheduled,
		CreatedAt:       time.Now(),
	}

	if err := s.store.Trips().Create(ctx, trip); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return trip, nil
}

// Get retrieves a trip by ID.
func (s *TripService) Get(ctx context.Context, id string) (*domain.Trip, error) {
	return s.store.Trips().GetByID(ctx, id)
}

// List retrieves trips matching the filter, ordered by ID.
func (s *TripService) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	return s.store.Trips().List(ctx, filter)
}

// Advance moves a trip to target if the transition is legal. Advancing
// to COMPLETED or CANCELLED releases the bound vehicle and driver back
// to AVAILABLE in the same transaction. reason is recorded on
// cancellation and ignored otherwise.
func (s *TripService) Advance(ctx context.Context, id string, target domain.TripStatus, reason string) (*domain.Trip, error) {
	locked, err := s.lockStore.AcquireTripLock(ctx, id, tripLockTTL)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrResourceBusy
	}
	defer func() { _ = s.lockStore.ReleaseTripLock(ctx, id) }()

	var updated *domain.Trip
	err = s.store.RunInTx(ctx, func(tx repository.Store) error {
		trip, err := tx.Trips().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !domain.CanTransitionTrip(trip.Status, target) {
			return ErrInvalidTransition
		}

		trip.Status = target
		switch target {
		case domain.TripStatusInProgress:
			// The reserved vehicle goes on trip when the trip starts.
			if trip.VehicleID != "" {
				vehicle, err := tx.Vehicles().GetByID(ctx, trip.VehicleID)
				if err != nil {
					return err
				}
				if vehicle.Status == domain.VehicleStatusReserved {
					if err := tx.Vehicles().UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusOnTrip); err != nil {
						return err
					}
				}
			}
			if err := tx.Trips().Update(ctx, trip); err != nil {
				return err
			}

		case domain.TripStatusCompleted:
			if err := releaseResources(ctx, tx, trip); err != nil {
				return err
			}

		case domain.TripStatusCancelled:
			trip.CancelledAt = time.Now()
			trip.CancelReason = reason
			if err := releaseResources(ctx, tx, trip); err != nil {
				return err
			}
		}

		updated = trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return updated, nil
}

func (s *TripService) invalidateStats(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateFleetStats(ctx)
}
