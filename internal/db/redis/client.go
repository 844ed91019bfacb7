// Package redis implements db.Store on rueidis. Only core hash, string and
// counter commands are issued, so Redis 7+ and Valkey behave the same.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/hrsearch/internal/db"
)

var _ db.Store = (*Store)(nil)

const clientName = "hrsearch"

// Config holds connection parameters.
type Config struct {
	Addrs    []string
	Password string
	// WriteTimeout bounds a single command; zero keeps the rueidis default.
	WriteTimeout time.Duration
}

// Store implements db.Store.
type Store struct {
	client rueidis.Client
}

// NewStore dials the server described by cfg. Client-side caching stays off:
// profile vectors are rewritten by rebuilds on other replicas.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:      cfg.Addrs,
		Password:         cfg.Password,
		ClientName:       clientName,
		ConnWriteTimeout: cfg.WriteTimeout,
		DisableCache:     true,
	})
	if err != nil {
		return nil, &db.Error{Op: "CONNECT", Err: err}
	}
	return &Store{client: client}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.do(ctx, s.b().Ping().Build()).Error(); err != nil {
		return &db.Error{Op: "PING", Err: err}
	}
	return nil
}

func (s *Store) Close() { s.client.Close() }

// WaitForReady polls Ping with backoff until the server answers or timeout passes.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, timeout, s.Ping)
}

func (s *Store) do(ctx context.Context, cmd rueidis.Completed) rueidis.RedisResult {
	return s.client.Do(ctx, cmd)
}

func (s *Store) b() rueidis.Builder { return s.client.B() }
