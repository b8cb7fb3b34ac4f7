package repository

import (
	"context"

	"teso/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id string) (*domain.Trip, error)

	// GetAll retrieves every persisted trip, oldest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// Count reports how many trips are persisted.
	Count(ctx context.Context) (int, error)
}

// CompanyRepository defines the persistence operations for corporate
// clients.
type CompanyRepository interface {
	// Create persists a new company.
	Create(ctx context.Context, company *domain.Company) error

	// GetByName retrieves a company by its unique name.
	GetByName(ctx context.Context, name string) (*domain.Company, error)

	// GetAll retrieves all companies.
	GetAll(ctx context.Context) ([]*domain.Company, error)
}

// DriverRepository defines the persistence operations for the driver
// pool.
type DriverRepository interface {
	// Create persists a new driver.
	Create(ctx context.Context, driver *domain.FleetDriver) error

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.FleetDriver, error)
}
