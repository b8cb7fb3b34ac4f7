package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"teso/internal/domain"
)

type fakeSource struct {
	name  string
	ds    *Dataset
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Load(context.Context, Request) (*Dataset, error) {
	f.calls++
	return f.ds, f.err
}

func oneTrip() []domain.Trip {
	return []domain.Trip{{ID: "trip-1", Client: "COMPANY_01", Channel: domain.ChannelCorporate}}
}

func TestResolve_FirstRungWins(t *testing.T) {
	t.Parallel()

	first := &fakeSource{name: "FIRST", ds: &Dataset{Trips: oneTrip()}}
	second := &fakeSource{name: "SECOND", ds: &Dataset{Trips: oneTrip()}}

	ds, err := NewResolver(first, second).Resolve(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Name != "FIRST" {
		t.Errorf("resolved source: got %s, want FIRST", ds.Name)
	}
	if second.calls != 0 {
		t.Errorf("second rung should not be consulted, called %d times", second.calls)
	}
}

func TestResolve_FailingRungFallsThrough(t *testing.T) {
	t.Parallel()

	first := &fakeSource{name: "FIRST", err: errors.New("unreachable")}
	second := &fakeSource{name: "SECOND", ds: &Dataset{Trips: oneTrip()}}

	ds, err := NewResolver(first, second).Resolve(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Name != "SECOND" {
		t.Errorf("resolved source: got %s, want SECOND", ds.Name)
	}
}

func TestResolve_EmptyDatasetFallsThrough(t *testing.T) {
	t.Parallel()

	first := &fakeSource{name: "FIRST", ds: &Dataset{}}
	second := &fakeSource{name: "SECOND", ds: &Dataset{Trips: oneTrip()}}

	ds, err := NewResolver(first, second).Resolve(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Name != "SECOND" {
		t.Errorf("resolved source: got %s, want SECOND", ds.Name)
	}
}

func TestResolve_AllRungsFail(t *testing.T) {
	t.Parallel()

	first := &fakeSource{name: "FIRST", err: errors.New("db down")}
	second := &fakeSource{name: "SECOND", err: errors.New("file missing")}

	_, err := NewResolver(first, second).Resolve(context.Background(), Request{})
	if !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
	// The error names every failed rung.
	for _, want := range []string{"FIRST: db down", "SECOND: file missing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestSnapshotSource_EmptyStoreFallsThrough(t *testing.T) {
	t.Parallel()

	src := NewSnapshotSource(emptyRunStore{})
	_, err := src.Load(context.Background(), Request{})
	if !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset for empty store, got %v", err)
	}
}

func TestSnapshotSource_ReturnsStoredTrips(t *testing.T) {
	t.Parallel()

	src := NewSnapshotSource(fixedRunStore{snap: &domain.RunSnapshot{Trips: oneTrip()}})
	ds, err := src.Load(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Trips) != 1 {
		t.Errorf("expected 1 trip, got %d", len(ds.Trips))
	}
}

type emptyRunStore struct{}

func (emptyRunStore) Load(context.Context) (*domain.RunSnapshot, error) { return nil, nil }
func (emptyRunStore) Save(context.Context, *domain.RunSnapshot) error   { return nil }

type fixedRunStore struct{ snap *domain.RunSnapshot }

func (s fixedRunStore) Load(context.Context) (*domain.RunSnapshot, error) { return s.snap, nil }
func (s fixedRunStore) Save(context.Context, *domain.RunSnapshot) error   { return nil }
