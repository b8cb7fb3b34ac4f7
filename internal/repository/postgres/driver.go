package postgres

import (
	"context"
	"database/sql"

	"teso/internal/domain"
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

// Create persists a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.FleetDriver) error {
	query := `INSERT INTO drivers (id, name, vehicle_plate, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.q.ExecContext(ctx, query, driver.ID, driver.Name, driver.VehiclePlate, driver.CreatedAt)
	return err
}

// GetAll retrieves all drivers.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.FleetDriver, error) {
	query := `SELECT id, name, vehicle_plate, created_at FROM drivers ORDER BY name`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []*domain.FleetDriver
	for rows.Next() {
		var driver domain.FleetDriver
		if err := rows.Scan(&driver.ID, &driver.Name, &driver.VehiclePlate, &driver.CreatedAt); err != nil {
			return nil, err
		}
		drivers = append(drivers, &driver)
	}

	return drivers, rows.Err()
}
