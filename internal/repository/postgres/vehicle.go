package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// VehicleRepository is a PostgreSQL implementation of repository.VehicleRepository.
type VehicleRepository struct {
	q Querier
}

// NewVehicleRepository creates a new PostgreSQL vehicle repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{q: db}
}

// NewVehicleRepositoryWithTx creates a vehicle repository using a transaction.
func NewVehicleRepositoryWithTx(tx *sql.Tx) *VehicleRepository {
	return &VehicleRepository{q: tx}
}

// Create adds a new vehicle.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, plate, type, capacity, fuel, features, hourly_rate, daily_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.Plate,
		vehicle.Type,
		vehicle.Capacity,
		vehicle.Fuel,
		pq.Array(vehicle.Features),
		vehicle.HourlyRate,
		vehicle.DailyRate,
		vehicle.Status,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a vehicle by ID.
func (r *VehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `
		SELECT id, plate, type, capacity, fuel, features, hourly_rate, daily_rate, status
		FROM vehicles WHERE id = $1
	`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByPlate retrieves a vehicle by license plate.
func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	query := `
		SELECT id, plate, type, capacity, fuel, features, hourly_rate, daily_rate, status
		FROM vehicles WHERE plate = $1
	`
	return r.scanOne(r.q.QueryRowContext(ctx, query, plate))
}

// List retrieves vehicles matching the filter, ordered by ID.
func (r *VehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, plate, type, capacity, fuel, features, hourly_rate, daily_rate, status
		FROM vehicles
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR type = $2)
		  AND ($3 = 0 OR capacity >= $3)
		ORDER BY id
	`

	rows, err := r.q.QueryContext(ctx, query, string(filter.Status), string(filter.Type), filter.MinCapacity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.Plate,
			&v.Type,
			&v.Capacity,
			&v.Fuel,
			pq.Array(&v.Features),
			&v.HourlyRate,
			&v.DailyRate,
			&v.Status,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

// UpdateStatus updates the status of a vehicle.
func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
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

// UpdateStatusFrom updates the status of a vehicle only while it still
// holds from. The status guard in the WHERE clause makes the write
// conditional at the database, so a concurrent status change committed
// after the caller's read cannot be overwritten.
func (r *VehicleRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
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

func (r *VehicleRepository) scanOne(row *sql.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID,
		&v.Plate,
		&v.Type,
		&v.Capacity,
		&v.Fuel,
		pq.Array(&v.Features),
		&v.HourlyRate,
		&v.DailyRate,
		&v.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
