package db

import (
	"context"
	"time"
)

// Store is the Redis/Valkey facade used by the profile vector cache, the
// query-embedding cache and the token budget. Consumers depend on the narrow
// sub-interfaces.
type Store interface {
	Pinger
	HashStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore holds one hash per profile vector.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// HGetAllMulti preserves key order; a missing key yields an empty map.
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
}

// KVStore holds cached blobs and expiring counters.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// IncrWithExpiry adds val and arms ttl only when the key has none yet.
	IncrWithExpiry(ctx context.Context, key string, val int64, ttl time.Duration) (int64, error)
}
