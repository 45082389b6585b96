package service

import (
	"context"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/redis"
	"fleet/internal/repository"
)

// DriverService handles driver registry operations: onboarding, lookups
// and leave/off-duty status changes. ON_TRIP is set only by assignment.
type DriverService struct {
	store      repository.Store
	cacheStore *redis.CacheStore
}

// NewDriverService creates a new DriverService.
func NewDriverService(store repository.Store, cacheStore *redis.CacheStore) *DriverService {
	return &DriverService{store: store, cacheStore: cacheStore}
}

// RegisterDriverRequest contains the parameters for onboarding a driver.
type RegisterDriverRequest struct {
	Name            string
	Phone           string
	LicenseClass    string
	ExperienceYears int
	Languages       []string
	Certifications  []string
}

// Register onboards a new driver in AVAILABLE status.
func (s *DriverService) Register(ctx context.Context, req RegisterDriverRequest) (*domain.Driver, error) {
	if req.Name == "" || req.Phone == "" || req.LicenseClass == "" {
		return nil, ErrInvalidDriver
	}
	if req.ExperienceYears < 0 {
		return nil, ErrInvalidDriver
	}

	driver := &domain.Driver{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Phone:           req.Phone,
		LicenseClass:    req.LicenseClass,
		ExperienceYears: req.ExperienceYears,
		Languages:       req.Languages,
		Certifications:  req.Certifications,
		Status:          domain.DriverStatusAvailable,
	}

	if err := s.store.Drivers().Create(ctx, driver); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return driver, nil
}

// Get retrieves a driver by ID.
func (s *DriverService) Get(ctx context.Context, id string) (*domain.Driver, error) {
	return s.store.Drivers().GetByID(ctx, id)
}

// GetByPhone retrieves a driver by phone number.
func (s *DriverService) GetByPhone(ctx context.Context, phone string) (*domain.Driver, error) {
	return s.store.Drivers().GetByPhone(ctx, phone)
}

// List retrieves drivers matching the filter, ordered by ID.
func (s *DriverService) List(ctx context.Context, filter repository.DriverFilter) ([]*domain.Driver, error) {
	return s.store.Drivers().List(ctx, filter)
}

// SetStatus performs an explicit leave/off-duty status change
// (AVAILABLE / OFF_DUTY / ON_LEAVE). Drivers currently on a trip cannot
// be moved, and ON_TRIP cannot be targeted.
func (s *DriverService) SetStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	if status == domain.DriverStatusOnTrip {
		return ErrInvalidTransition
	}

	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		driver, err := tx.Drivers().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if driver.Status == domain.DriverStatusOnTrip {
			return ErrInvalidTransition
		}
		if !domain.CanTransitionDriver(driver.Status, status) {
			return ErrInvalidTransition
		}
		return tx.Drivers().UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *DriverService) invalidateStats(ctx context.Context) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.InvalidateFleetStats(ctx)
}
