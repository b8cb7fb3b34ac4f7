package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"teso/internal/domain"
	"teso/internal/repository"
	"teso/internal/source"
)

// DatasetService handles the one-time migration of the seed dataset
// into the durable store: companies and drivers first (deduplicated),
// then trips.
type DatasetService struct {
	tripRepo    repository.TripRepository
	companyRepo repository.CompanyRepository
	driverRepo  repository.DriverRepository
	seed        source.Source
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(tripRepo repository.TripRepository, companyRepo repository.CompanyRepository, driverRepo repository.DriverRepository, seed source.Source) *DatasetService {
	return &DatasetService{tripRepo: tripRepo, companyRepo: companyRepo, driverRepo: driverRepo, seed: seed}
}

// SeedResult reports what a seeding run did.
type SeedResult struct {
	TripsInserted     int `json:"trips_inserted"`
	CompaniesInserted int `json:"companies_inserted"`
	DriversInserted   int `json:"drivers_inserted"`
	RecordsSkipped    int `json:"records_skipped"`
}

// Seed loads the seed dataset and populates the trip store. Refuses to
// run against a non-empty store.
func (s *DatasetService) Seed(ctx context.Context) (*SeedResult, error) {
	count, err := s.tripRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadySeeded
	}

	ds, err := s.seed.Load(ctx, source.Request{})
	if err != nil {
		return nil, err
	}
	if len(ds.Trips) == 0 {
		return nil, ErrNoSeedData
	}

	result := &SeedResult{RecordsSkipped: ds.Skipped}

	knownCompanies := make(map[string]bool)
	knownDrivers := make(map[string]bool)
	for i := range ds.Trips {
		trip := ds.Trips[i]
		if trip.ID == "" {
			trip.ID = uuid.New().String()
		}

		if trip.Client != domain.ClientIndividual && !knownCompanies[trip.Client] {
			if err := s.ensureCompany(ctx, trip.Client, result); err != nil {
				return nil, err
			}
			knownCompanies[trip.Client] = true
		}

		if trip.Driver != "" && !knownDrivers[trip.Driver] {
			if err := s.registerDriver(ctx, &trip, result); err != nil {
				return nil, err
			}
			knownDrivers[trip.Driver] = true
		}

		if err := s.tripRepo.Create(ctx, &trip); err != nil {
			return nil, err
		}
		result.TripsInserted++
	}

	return result, nil
}

func (s *DatasetService) ensureCompany(ctx context.Context, name string, result *SeedResult) error {
	_, err := s.companyRepo.GetByName(ctx, name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	company := &domain.Company{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return err
	}
	result.CompaniesInserted++
	return nil
}

// registerDriver enrolls the driver/vehicle pairing from the first trip
// that names it. Seeding runs once against an empty store, so in-run
// dedup is enough.
func (s *DatasetService) registerDriver(ctx context.Context, trip *domain.Trip, result *SeedResult) error {
	driver := &domain.FleetDriver{
		ID:           uuid.New().String(),
		Name:         trip.Driver,
		VehiclePlate: trip.Vehicle,
		CreatedAt:    time.Now(),
	}
	if err := s.driverRepo.Create(ctx, driver); err != nil {
		return err
	}
	result.DriversInserted++
	return nil
}
