package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

const tripColumns = `id, client_name, event_name, pickup_location, dropoff_location, pickup_at, estimated_end_at, passengers, price, vehicle_type, status, vehicle_id, driver_id, created_at, cancelled_at, cancel_reason`

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	var cancelledAt sql.NullTime
	if !trip.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: trip.CancelledAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.ClientName,
		nullString(trip.EventName),
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.PickupAt,
		trip.EstimatedEndAt,
		trip.Passengers,
		trip.Price,
		nullString(string(trip.VehicleType)),
		trip.Status,
		nullString(trip.VehicleID),
		nullString(trip.DriverID),
		trip.CreatedAt,
		cancelledAt,
		nullString(trip.CancelReason),
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	t, err := scanTrip(r.q.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List retrieves trips matching the filter, ordered by ID.
func (r *TripRepository) List(ctx context.Context, filter repository.TripFilter) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE ($1 = '' OR status = $1)
		ORDER BY id
	`
	return r.queryTrips(ctx, query, string(filter.Status))
}

// Update updates an existing trip.
func (r *TripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips
		SET client_name = $1, event_name = $2, pickup_location = $3, dropoff_location = $4,
		    pickup_at = $5, estimated_end_at = $6, passengers = $7, price = $8, vehicle_type = $9,
		    status = $10, vehicle_id = $11, driver_id = $12, cancelled_at = $13, cancel_reason = $14
		WHERE id = $15
	`

	var cancelledAt sql.NullTime
	if !trip.CancelledAt.IsZero() {
		cancelledAt = sql.NullTime{Time: trip.CancelledAt, Valid: true}
	}

	result, err := r.q.ExecContext(ctx, query,
		trip.ClientName,
		nullString(trip.EventName),
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.PickupAt,
		trip.EstimatedEndAt,
		trip.Passengers,
		trip.Price,
		nullString(string(trip.VehicleType)),
		trip.Status,
		nullString(trip.VehicleID),
		nullString(trip.DriverID),
		cancelledAt,
		nullString(trip.CancelReason),
		trip.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListActiveByVehicleID retrieves the non-terminal trips assigned to a vehicle.
// Relies on the (vehicle_id, pickup_at) index for the overlap query.
func (r *TripRepository) ListActiveByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE vehicle_id = $1 AND status IN ('SCHEDULED', 'IN_PROGRESS')
		ORDER BY pickup_at, id
	`
	return r.queryTrips(ctx, query, vehicleID)
}

// ListActiveByDriverID retrieves the non-terminal trips assigned to a driver.
func (r *TripRepository) ListActiveByDriverID(ctx context.Context, driverID string) ([]*domain.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1 AND status IN ('SCHEDULED', 'IN_PROGRESS')
		ORDER BY pickup_at, id
	`
	return r.queryTrips(ctx, query, driverID)
}

func (r *TripRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*domain.Trip, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func scanTrip(scan func(...any) error) (*domain.Trip, error) {
	var t domain.Trip
	var eventName, vehicleType, vehicleID, driverID, cancelReason sql.NullString
	var cancelledAt sql.NullTime

	err := scan(
		&t.ID,
		&t.ClientName,
		&eventName,
		&t.PickupLocation,
		&t.DropoffLocation,
		&t.PickupAt,
		&t.EstimatedEndAt,
		&t.Passengers,
		&t.Price,
		&vehicleType,
		&t.Status,
		&vehicleID,
		&driverID,
		&t.CreatedAt,
		&cancelledAt,
		&cancelReason,
	)
	if err != nil {
		return nil, err
	}

	t.EventName = eventName.String
	t.VehicleType = domain.VehicleType(vehicleType.String)
	t.VehicleID = vehicleID.String
	t.DriverID = driverID.String
	t.CancelReason = cancelReason.String
	if cancelledAt.Valid {
		t.CancelledAt = cancelledAt.Time
	}
	return &t, nil
}
