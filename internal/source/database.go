package source

import (
	"context"
	"fmt"

	"teso/internal/domain"
	"teso/internal/repository"
)

// DatabaseSource resolves the dataset from the durable trip store.
type DatabaseSource struct {
	trips repository.TripRepository
}

// NewDatabaseSource creates a source over the given trip repository.
func NewDatabaseSource(trips repository.TripRepository) *DatabaseSource {
	return &DatabaseSource{trips: trips}
}

// Name implements Source.
func (s *DatabaseSource) Name() string { return "POSTGRES_DB" }

// Load implements Source.
func (s *DatabaseSource) Load(ctx context.Context, _ Request) (*Dataset, error) {
	trips, err := s.trips.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching trips: %w", err)
	}
	if len(trips) == 0 {
		return nil, ErrEmptyDataset
	}

	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, *t)
	}
	return &Dataset{Trips: out}, nil
}
