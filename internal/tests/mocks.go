package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"teso/internal/domain"
	"teso/internal/repository"
	"teso/internal/source"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[string]*domain.Trip
	order []string

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
	CountError  error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository() *MockTripRepository {
	return &MockTripRepository{
		trips: make(map[string]*domain.Trip),
	}
}

// AddTrip adds a trip to the mock repository (test setup).
func (m *MockTripRepository) AddTrip(trip *domain.Trip) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	m.order = append(m.order, trip.ID)
}

func (m *MockTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trips[trip.ID] = trip
	m.order = append(m.order, trip.ID)
	return nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *trip
	return &copy, nil
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Trip, 0, len(m.order))
	for _, id := range m.order {
		copy := *m.trips[id]
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockTripRepository) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips), nil
}

// CountTrips returns the number of trips (for test assertions).
func (m *MockTripRepository) CountTrips() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips)
}

// GetTrip returns trip for assertions.
func (m *MockTripRepository) GetTrip(id string) *domain.Trip {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trips[id]
}

// ──────────────────────────────────────────────
// MOCK COMPANY REPOSITORY
// ──────────────────────────────────────────────

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]*domain.Company

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockCompanyRepository creates a new mock company repository.
func NewMockCompanyRepository() *MockCompanyRepository {
	return &MockCompanyRepository{
		companies: make(map[string]*domain.Company),
	}
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[company.Name] = company
	return nil
}

func (m *MockCompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	company, ok := m.companies[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *company
	return &copy, nil
}

func (m *MockCompanyRepository) GetAll(ctx context.Context) ([]*domain.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.companies))
	for name := range m.companies {
		names = append(names, name)
	}
	sort.Strings(names)
	result := make([]*domain.Company, 0, len(names))
	for _, name := range names {
		copy := *m.companies[name]
		result = append(result, &copy)
	}
	return result, nil
}

// CountCompanies returns the number of companies (for test assertions).
func (m *MockCompanyRepository) CountCompanies() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.companies)
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.FleetDriver

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.FleetDriver),
	}
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.FleetDriver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.FleetDriver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.FleetDriver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

// CountDrivers returns the number of drivers (for test assertions).
func (m *MockDriverRepository) CountDrivers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.drivers)
}

// ──────────────────────────────────────────────
// MOCK RUN STORE
// ──────────────────────────────────────────────

// MockRunStore is an in-memory run snapshot store.
type MockRunStore struct {
	mu   sync.RWMutex
	snap *domain.RunSnapshot

	// Counters for verification
	SaveCallCount int32

	// Error injection
	LoadError error
	SaveError error
}

// NewMockRunStore creates a new mock run store.
func NewMockRunStore() *MockRunStore {
	return &MockRunStore{}
}

func (m *MockRunStore) Load(ctx context.Context) (*domain.RunSnapshot, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap, nil
}

func (m *MockRunStore) Save(ctx context.Context, snap *domain.RunSnapshot) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	return nil
}

// Snapshot returns the stored snapshot (for test assertions).
func (m *MockRunStore) Snapshot() *domain.RunSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

var (
	_ repository.TripRepository    = (*MockTripRepository)(nil)
	_ repository.CompanyRepository = (*MockCompanyRepository)(nil)
	_ repository.DriverRepository  = (*MockDriverRepository)(nil)
	_ source.RunStore              = (*MockRunStore)(nil)
)

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
