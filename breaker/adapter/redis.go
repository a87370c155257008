package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bjaus/resilient/breaker"
)

// RedisStore is a breaker.StateStore backed by Redis, for sharing breaker
// state across process instances. State is serialized with msgpack, which
// round-trips the bucket ring and nullable timestamps more compactly than
// JSON would.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore builds a RedisStore against an already-connected client.
// keyPrefix is prepended to every circuit ID to namespace keys; pass "" for
// none.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix}
}

func (s *RedisStore) key(circuitID string) string {
	return s.prefix + circuitID
}

// GetState returns the deserialized state, or nil if no key is stored for
// circuitID.
func (s *RedisStore) GetState(ctx context.Context, circuitID string) (*breaker.State, error) {
	data, err := s.client.Get(ctx, s.key(circuitID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("breaker/adapter: redis get %q: %w", circuitID, err)
	}

	var state breaker.State
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("breaker/adapter: decode state for %q: %w", circuitID, err)
	}
	return &state, nil
}

// SetState serializes state and writes it with no expiry. Callers that
// want stale circuits to self-expire should wrap this store or set a TTL
// on the underlying client's keyspace policy; the breaker package itself
// never calls a StateStore, so state moves only when a caller passes
// Circuit.ExportState / ImportState values through it.
func (s *RedisStore) SetState(ctx context.Context, circuitID string, state breaker.State) error {
	data, err := msgpack.Marshal(state)
	if err != nil {
		return fmt.Errorf("breaker/adapter: encode state for %q: %w", circuitID, err)
	}
	if err := s.client.Set(ctx, s.key(circuitID), data, 0).Err(); err != nil {
		return fmt.Errorf("breaker/adapter: redis set %q: %w", circuitID, err)
	}
	return nil
}

// DeleteState removes circuitID's key. Deleting an absent key is not an
// error.
func (s *RedisStore) DeleteState(ctx context.Context, circuitID string) error {
	if err := s.client.Del(ctx, s.key(circuitID)).Err(); err != nil {
		return fmt.Errorf("breaker/adapter: redis del %q: %w", circuitID, err)
	}
	return nil
}
