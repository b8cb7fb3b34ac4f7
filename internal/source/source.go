// Package source implements the source resolution policy: an ordered
// list of dataset providers evaluated top-down, stopping at the first
// one that yields trips. The canonical order is live snapshot, durable
// store, seed file, on-the-fly synthesis.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"teso/internal/domain"
)

var (
	// ErrEmptyDataset is returned by a source that is reachable but
	// holds no trips; resolution moves on to the next rung.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrNoSource is returned when every rung failed.
	ErrNoSource = errors.New("all data sources failed")
)

// Request carries the generation knobs a synthetic source needs.
// Dataset-backed sources ignore it.
type Request struct {
	HorizonDays    int
	BaseDailyTrips int
	DriverCount    int
	TrafficGrowth  float64
	CorporateShare float64
}

// Dataset is the resolved trip collection plus bookkeeping about where
// it came from and how many records were dropped on the way in.
type Dataset struct {
	Name    string
	Trips   []domain.Trip
	Skipped int
}

// Source is one rung of the resolution ladder.
type Source interface {
	// Name identifies the rung in summaries and logs.
	Name() string

	// Load produces the dataset or an error; an error (including
	// ErrEmptyDataset) sends resolution to the next rung.
	Load(ctx context.Context, req Request) (*Dataset, error)
}

// Resolver walks an ordered source list and returns the first dataset
// that loads. The order is fixed at construction; callers must list
// rungs from most to least authoritative.
type Resolver struct {
	sources []Source
}

// NewResolver creates a resolver over the given rungs, evaluated in
// argument order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve returns the first successfully loaded dataset. If every rung
// fails, the error wraps ErrNoSource and lists each rung's failure.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Dataset, error) {
	var failures []string
	for _, s := range r.sources {
		ds, err := s.Load(ctx, req)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", s.Name(), err))
			continue
		}
		if ds == nil || len(ds.Trips) == 0 {
			failures = append(failures, fmt.Sprintf("%s: %v", s.Name(), ErrEmptyDataset))
			continue
		}
		ds.Name = s.Name()
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSource, strings.Join(failures, "; "))
}
