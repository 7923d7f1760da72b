package snapshot

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/talegraph/talegraph/pkg/errors"
)

// keyPrefix namespaces snapshot keys in a shared Redis instance.
const keyPrefix = "talegraph:snapshot:"

// RedisStore keeps the snapshot in Redis, for deployments running more
// than one web replica against the same last-good snapshot.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "ping redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

func key(databaseID string) string { return keyPrefix + databaseID }

// Load reads the snapshot from Redis. A missing key, unparseable value, or
// schema mismatch is a miss, not an error.
func (s *RedisStore) Load(ctx context.Context, databaseID string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, key(databaseID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "get snapshot for %s", databaseID)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil
	}
	if !snap.matches(databaseID) {
		return nil, nil
	}
	return &snap, nil
}

// Save persists the snapshot without expiry; the explicit refresh action
// is the only invalidation path.
func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "marshal snapshot")
	}
	if err := s.client.Set(ctx, key(snap.DatabaseID), data, 0).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "set snapshot for %s", snap.DatabaseID)
	}
	return nil
}

// Clear removes the snapshot key.
func (s *RedisStore) Clear(ctx context.Context, databaseID string) error {
	if err := s.client.Del(ctx, key(databaseID)).Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeSnapshotIO, err, "delete snapshot for %s", databaseID)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
