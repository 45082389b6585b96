package service

import (
	"context"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

// VehicleService handles vehicle registry operations: onboarding,
// lookups and maintenance status changes. Assignment-owned statuses
// (RESERVED, ON_TRIP) are never set through this service.
type VehicleService struct {
	store      repository.Store
	cacheStore *redis.CacheStore
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(store repository.Store, cacheStore *redis.CacheStore) *VehicleService {
	return &VehicleService{store: store, cacheStore: cacheStore}
}

// RegisterVehicleRequest contains the parameters for onboarding a vehicle.
type RegisterVehicleRequest struct {
	Plate      string
	Type       domain.VehicleType
	Capacity   int
	Fuel       domain.FuelType
	Features   []string
	HourlyRate float64
	DailyRate  float64
}

var validVehicleTypes = map[domain.VehicleType]bool{
	domain.VehicleTypeSedan:     true,
	domain.VehicleTypeSUV:       true,
	domain.VehicleTypeVan:       true,
	domain.VehicleTypeMinibus:   true,
	domain.VehicleTypeBus:       true,
	domain.VehicleTypeLimousine: true,
	domain.VehicleTypeSprinter:  true,
}

// Register onboards a new vehicle in AVAILABLE status.
func (s *VehicleService) Register(ctx context.Context, req RegisterVehicleRequest) (*domain.Vehicle, error) {
	if req.Plate == "" || !validVehicleTypes[req.Type] || req.Capacity <= 0 {
		return nil, ErrInvalidVehicle
	}
	if req.HourlyRate < 0 || req.DailyRate < 0 {
		return nil, ErrInvalidVehicle
	}

	vehicle := &domain.Vehicle{
		ID:         uuid.New().String(),
		Plate:      req.Plate,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Fuel:       req.Fuel,
		Features:   req.Features,
		HourlyRate: req.HourlyRate,
		DailyRate:  req.DailyRate,
		Status:     domain.VehicleStatusAvailable,
	}

	if err := s.store.Vehicles().Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return vehicle, nil
}

// Get retrieves a vehicle by ID.
func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.store.Vehicles().GetByID(ctx, id)
}

// GetByPlate retrieves a vehicle by license plate.
func (s *VehicleService) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return s.store.Vehicles().GetByPlate(ctx, plate)
}

// List retrieves vehicles matching the filter, ordered by ID.
func (s *VehicleService) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	return s.store.Vehicles().List(ctx, filter)
}

// SetStatus performs a maintenance-workflow status change
// (AVAILABLE / MAINTENANCE / OUT_OF_SERVICE). Vehicles currently bound
// to a trip cannot be moved, and the assignment-owned statuses cannot
// be targeted.
func (s *VehicleService) SetStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	if status == domain.VehicleStatusReserved || status == domain.VehicleStatusOnTrip {
		return ErrInvalidTransition
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		vehicle, err := tx.Vehicles().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if vehicle.Assigned() {
			return ErrInvalidTransition
		}
		if !domain.CanTransitionVehicle(vehicle.Status, status) {
			return ErrInvalidTransition
		}
		return tx.Vehicles().UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *VehicleService) invalidateStats(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateFleetStats(ctx)
}
