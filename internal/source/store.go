package source

import (
	"context"

	"teso/internal/domain"
)

// RunStore holds the current simulation run. Load returns (nil, nil)
// when no snapshot exists yet. Implementations: the Redis run cache
// and the file-backed disk mirror.
type RunStore interface {
	Load(ctx context.Context) (*domain.RunSnapshot, error)
	Save(ctx context.Context, snap *domain.RunSnapshot) error
}

// SnapshotSource resolves the dataset from the snapshot of a prior run
// of this same engine. It is the most authoritative rung: live beats
// seed beats synthetic.
type SnapshotSource struct {
	store RunStore
}

// NewSnapshotSource creates a source over the given run store.
func NewSnapshotSource(store RunStore) *SnapshotSource {
	return &SnapshotSource{store: store}
}

// Name implements Source.
func (s *SnapshotSource) Name() string { return "LIVE_SNAPSHOT" }

// Load implements Source.
func (s *SnapshotSource) Load(ctx context.Context, _ Request) (*Dataset, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil || len(snap.Trips) == 0 {
		return nil, ErrEmptyDataset
	}
	return &Dataset{Trips: snap.Trips}, nil
}
