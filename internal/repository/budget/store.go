// Package budget persists token budget counters in Redis.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/hrsearch/internal/db"
)

// store is the consumer interface for budget operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrWithExpiry(ctx context.Context, key string, val int64, ttl time.Duration) (int64, error)
}

// Store keeps per-period counters with INCRBY and a one-time EXPIRE NX.
type Store struct {
	store    store
	dayTTL   time.Duration
	monthTTL time.Duration
}

// New creates a budget store. Keys containing ":day:" get dayTTL, the rest monthTTL.
func New(s store, dayTTL, monthTTL time.Duration) *Store {
	return &Store{store: s, dayTTL: dayTTL, monthTTL: monthTTL}
}

// IncrBy adds val to the counter and arms its expiry on first write.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if _, err := s.store.IncrWithExpiry(ctx, key, val, s.ttl(key)); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}
	return nil
}

// Get returns the counter value; a missing key reads as zero.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget parse %s: %w", key, err)
	}
	return val, nil
}

func (s *Store) ttl(key string) time.Duration {
	if strings.Contains(key, ":day:") {
		return s.dayTTL
	}
	return s.monthTTL
}
