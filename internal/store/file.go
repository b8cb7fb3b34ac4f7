// Package store provides the disk-backed run snapshot store: the
// mirror that survives Redis restarts and makes prior runs resolvable
// as the live dataset.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"teso/internal/domain"
	"teso/internal/source"
)

// FileStore persists the current run snapshot as JSON on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store at the given path. The parent directory
// is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. Returns (nil, nil) when none exists yet.
func (s *FileStore) Load(_ context.Context) (*domain.RunSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap domain.RunSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically (temp file plus rename).
func (s *FileStore) Save(_ context.Context, snap *domain.RunSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Mirrored layers two run stores: loads prefer the primary and fall
// back to the mirror; saves go to both, with mirror failures reported
// but not fatal.
type Mirrored struct {
	primary source.RunStore
	mirror  source.RunStore
}

// NewMirrored creates a mirrored store.
func NewMirrored(primary, mirror source.RunStore) *Mirrored {
	return &Mirrored{primary: primary, mirror: mirror}
}

// Load implements source.RunStore.
func (m *Mirrored) Load(ctx context.Context) (*domain.RunSnapshot, error) {
	snap, err := m.primary.Load(ctx)
	if err == nil && snap != nil {
		return snap, nil
	}
	return m.mirror.Load(ctx)
}

// Save implements source.RunStore.
func (m *Mirrored) Save(ctx context.Context, snap *domain.RunSnapshot) error {
	if err := m.primary.Save(ctx, snap); err != nil {
		return err
	}
	if err := m.mirror.Save(ctx, snap); err != nil {
		return fmt.Errorf("mirroring snapshot: %w", err)
	}
	return nil
}

// Ensure interfaces are satisfied.
var (
	_ source.RunStore = (*FileStore)(nil)
	_ source.RunStore = (*Mirrored)(nil)
)
