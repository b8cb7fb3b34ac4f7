package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"teso/internal/domain"
	"teso/internal/source"
)

func sampleSnap() *domain.RunSnapshot {
	return &domain.RunSnapshot{
		GeneratedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Source:         "SYNTHETIC",
		InitialCash:    720000000,
		ClosingBalance: 721000000,
		Trips:          []domain.Trip{{ID: "t-1", Client: "COMPANY_01"}},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()

	// Nested path exercises directory creation on first save.
	path := filepath.Join(t.TempDir(), "data", "current_run.json")
	fs := NewFileStore(path)
	ctx := context.Background()

	if err := fs.Save(ctx, sampleSnap()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}
	if got.Source != "SYNTHETIC" || got.ClosingBalance != 721000000 {
		t.Errorf("unexpected snapshot: %+v", got)
	}
	if len(got.Trips) != 1 || got.Trips[0].ID != "t-1" {
		t.Errorf("trips not preserved: %+v", got.Trips)
	}
}

func TestFileStore_MissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	snap, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil snapshot, got %+v", snap)
	}
}

type stubStore struct {
	snap    *domain.RunSnapshot
	loadErr error
	saveErr error
	saves   int
}

func (s *stubStore) Load(context.Context) (*domain.RunSnapshot, error) {
	return s.snap, s.loadErr
}

func (s *stubStore) Save(_ context.Context, snap *domain.RunSnapshot) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snap
	return nil
}

var _ source.RunStore = (*stubStore)(nil)

func TestMirrored_LoadPrefersPrimary(t *testing.T) {
	t.Parallel()

	primary := &stubStore{snap: &domain.RunSnapshot{Source: "PRIMARY"}}
	mirror := &stubStore{snap: &domain.RunSnapshot{Source: "MIRROR"}}

	snap, err := NewMirrored(primary, mirror).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != "PRIMARY" {
		t.Errorf("expected primary snapshot, got %s", snap.Source)
	}
}

func TestMirrored_LoadFallsBackToMirror(t *testing.T) {
	t.Parallel()

	primary := &stubStore{loadErr: errors.New("redis down")}
	mirror := &stubStore{snap: &domain.RunSnapshot{Source: "MIRROR"}}

	snap, err := NewMirrored(primary, mirror).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Source != "MIRROR" {
		t.Errorf("expected mirror snapshot, got %s", snap.Source)
	}
}

func TestMirrored_SaveWritesBoth(t *testing.T) {
	t.Parallel()

	primary := &stubStore{}
	mirror := &stubStore{}

	if err := NewMirrored(primary, mirror).Save(context.Background(), sampleSnap()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.saves != 1 || mirror.saves != 1 {
		t.Errorf("expected both stores written, got primary=%d mirror=%d", primary.saves, mirror.saves)
	}
}

func TestMirrored_MirrorFailureIsReported(t *testing.T) {
	t.Parallel()

	primary := &stubStore{}
	mirror := &stubStore{saveErr: errors.New("disk full")}

	err := NewMirrored(primary, mirror).Save(context.Background(), sampleSnap())
	if err == nil {
		t.Fatal("expected mirror failure to surface")
	}
	if primary.saves != 1 {
		t.Errorf("primary should have been written first, saves=%d", primary.saves)
	}
}
