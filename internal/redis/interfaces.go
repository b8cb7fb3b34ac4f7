package redis

import (
	"context"
	"time"

	"teso/internal/source"
)

// LockStoreInterface defines the interface for the regeneration lock.
type LockStoreInterface interface {
	AcquireSimulationLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseSimulationLock(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ source.RunStore    = (*RunCache)(nil)
	_ LockStoreInterface = (*LockStore)(nil)
)
