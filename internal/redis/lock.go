package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const simulationLockKey = "lock:simulation:current"

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireSimulationLock attempts to take the regeneration lock, so
// only one request rebuilds the shared current dataset at a time.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireSimulationLock(ctx context.Context, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, simulationLockKey, "1", ttl).Result()
}

// ReleaseSimulationLock releases the regeneration lock.
func (s *LockStore) ReleaseSimulationLock(ctx context.Context) error {
	return s.client.Del(ctx, simulationLockKey).Err()
}
