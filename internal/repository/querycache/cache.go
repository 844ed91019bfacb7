// Package querycache is the bounded in-process cache of interpreted queries.
package querycache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/kailas-cloud/hrsearch/internal/domain/query"
)

// Cache maps the exact raw query string to its interpretation.
// Size-bounded with LRU eviction and a per-entry TTL; safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[string, query.Parsed]
}

// New creates a cache holding at most size entries for ttl each.
// A non-positive ttl disables expiry.
func New(size int, ttl time.Duration) *Cache {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{lru: expirable.NewLRU[string, query.Parsed](size, nil, ttl)}
}

// Get returns the cached interpretation of raw.
func (c *Cache) Get(raw string) (query.Parsed, bool) {
	return c.lru.Get(raw)
}

// Put stores the interpretation of raw.
func (c *Cache) Put(raw string, p query.Parsed) {
	c.lru.Add(raw, p)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
