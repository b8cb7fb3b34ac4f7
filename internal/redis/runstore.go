package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"teso/internal/domain"
)

const (
	runSnapshotKey = "simulation:current"

	// RunSnapshotTTL bounds how long a cached run stays authoritative
	// before resolution falls through to the durable store or seed.
	RunSnapshotTTL = 24 * time.Hour
)

// RunCache stores the current simulation snapshot in Redis. It is the
// primary rung of the run store; the file store mirrors it on disk.
type RunCache struct {
	client *redis.Client
}

// NewRunCache creates a new RunCache.
func NewRunCache(client *redis.Client) *RunCache {
	return &RunCache{client: client}
}

// Load retrieves the current snapshot. Returns (nil, nil) on a miss.
func (c *RunCache) Load(ctx context.Context) (*domain.RunSnapshot, error) {
	data, err := c.client.Get(ctx, runSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var snap domain.RunSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save stores the snapshot with the standard TTL.
func (c *RunCache) Save(ctx context.Context, snap *domain.RunSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, runSnapshotKey, data, RunSnapshotTTL).Err()
}
