package postgres

import (
	"context"
	"database/sql"
	"errors"

	"teso/internal/domain"
	"teso/internal/repository"
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

// Create persists a new trip. Only contract terms are stored; the
// outcome-adjusted financials are derived per run, never persisted.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, trip_date, client, channel, driver, vehicle, status, fare, toll, commission_rate, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.Date,
		trip.Client,
		trip.Channel,
		trip.Driver,
		trip.Vehicle,
		trip.Status,
		trip.Fare,
		trip.Toll,
		trip.CommissionRate,
		trip.Source,
	)

	return err
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
		SELECT id, trip_date, client, channel, driver, vehicle, status, fare, toll, commission_rate, source
		FROM trips WHERE id = $1
	`

	var trip domain.Trip
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.Date,
		&trip.Client,
		&trip.Channel,
		&trip.Driver,
		&trip.Vehicle,
		&trip.Status,
		&trip.Fare,
		&trip.Toll,
		&trip.CommissionRate,
		&trip.Source,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &trip, nil
}

// GetAll retrieves every persisted trip, oldest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `
		SELECT id, trip_date, client, channel, driver, vehicle, status, fare, toll, commission_rate, source
		FROM trips ORDER BY trip_date ASC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Date,
			&trip.Client,
			&trip.Channel,
			&trip.Driver,
			&trip.Vehicle,
			&trip.Status,
			&trip.Fare,
			&trip.Toll,
			&trip.CommissionRate,
			&trip.Source,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

// Count reports how many trips are persisted.
func (r *TripRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&count)
	return count, err
}
