package source

import (
	"context"
	"fmt"

	"teso/internal/domain"
)

// GenerateFunc synthesizes nominal trips for the requested horizon.
type GenerateFunc func(ctx context.Context, req Request) ([]domain.Trip, error)

// SyntheticSource is the last resolution rung: generate the dataset on
// the fly. It only fails when generation itself fails.
type SyntheticSource struct {
	generate GenerateFunc
}

// NewSyntheticSource creates a source over the given generator.
func NewSyntheticSource(generate GenerateFunc) *SyntheticSource {
	return &SyntheticSource{generate: generate}
}

// Name implements Source.
func (s *SyntheticSource) Name() string { return "SYNTHETIC" }

// Load implements Source.
func (s *SyntheticSource) Load(ctx context.Context, req Request) (*Dataset, error) {
	trips, err := s.generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generating dataset: %w", err)
	}
	return &Dataset{Trips: trips}, nil
}
