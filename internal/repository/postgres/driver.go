package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (id, name, phone, license_class, experience_years, languages, certifications, status, assigned_vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		driver.ID,
		driver.Name,
		driver.Phone,
		driver.LicenseClass,
		driver.ExperienceYears,
		pq.Array(driver.Languages),
		pq.Array(driver.Certifications),
		driver.Status,
		nullString(driver.AssignedVehicleID),
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), license_class, experience_years, languages, certifications, status, assigned_vehicle_id
		FROM drivers WHERE id = $1
	`
	return r.scanOne(r.q.QueryRowContext(ctx, query, id))
}

// GetByPhone retrieves a driver by phone number.
func (r *DriverRepository) GetByPhone(ctx context.Context, phone string) (*domain.Driver, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), license_class, experience_years, languages, certifications, status, assigned_vehicle_id
		FROM drivers WHERE phone = $1
	`
	return r.scanOne(r.q.QueryRowContext(ctx, query, phone))
}

// List retrieves drivers matching the filter, ordered by ID.
func (r *DriverRepository) List(ctx context.Context, filter repository.DriverFilter) ([]*domain.Driver, error) {
	query := `
		SELECT id, COALESCE(name, ''), COALESCE(phone, ''), license_class, experience_years, languages, certifications, status, assigned_vehicle_id
		FROM drivers
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR license_class = $2)
		ORDER BY id
	`

	rows, err := r.q.QueryContext(ctx, query, string(filter.Status), filter.LicenseClass)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows.Scan)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

// UpdateStatus updates the status of a driver.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) error {
	query := `UPDATE drivers SET status = $1 WHERE id = $2`

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

// UpdateAssignment updates the status and vehicle back-reference of a driver.
func (r *DriverRepository) UpdateAssignment(ctx context.Context, id string, status domain.DriverStatus, vehicleID string) error {
	query := `UPDATE drivers SET status = $1, assigned_vehicle_id = $2 WHERE id = $3`

	result, err := r.q.ExecContext(ctx, query, status, nullString(vehicleID), id)
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

// UpdateAssignmentFrom is UpdateAssignment guarded on the driver still
// holding from, enforced by the WHERE clause so a concurrent status
// change cannot be overwritten.
func (r *DriverRepository) UpdateAssignmentFrom(ctx context.Context, id string, from, to domain.DriverStatus, vehicleID string) error {
	query := `UPDATE drivers SET status = $1, assigned_vehicle_id = $2 WHERE id = $3 AND status = $4`

	result, err := r.q.ExecContext(ctx, query, to, nullString(vehicleID), id, from)
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

func (r *DriverRepository) scanOne(row *sql.Row) (*domain.Driver, error) {
	d, err := scanDriver(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func scanDriver(scan func(...any) error) (*domain.Driver, error) {
	var d domain.Driver
	var assignedVehicleID sql.NullString

	err := scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.LicenseClass,
		&d.ExperienceYears,
		pq.Array(&d.Languages),
		pq.Array(&d.Certifications),
		&d.Status,
		&assignedVehicleID,
	)
	if err != nil {
		return nil, err
	}

	if assignedVehicleID.Valid {
		d.AssignedVehicleID = assignedVehicleID.String
	}
	return &d, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
