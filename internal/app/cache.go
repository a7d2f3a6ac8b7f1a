package app

import (
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"
)

// Rendered is a complete response body ready to be written or cached
type Rendered struct {
	ContentType string
	Disposition string
	Body        []byte
	ETag        string
}

type cacheEntry struct {
	resp    *Rendered
	expires time.Time
}

// ResponseCache keeps rendered responses per key for a short TTL. Concurrent
// misses on the same key render once. Failed renders are never stored, so a
// stale entry is always a previously valid response.
type ResponseCache struct {
	ttl     time.Duration
	now     func() time.Time
	metrics *Metrics

	mu      sync.RWMutex
	entries map[string]cacheEntry
	gen     uint64
	group   singleflight.Group
}

// NewResponseCache creates a cache. A zero ttl disables caching.
func NewResponseCache(ttl time.Duration, metrics *Metrics) *ResponseCache {
	return &ResponseCache{
		ttl:     ttl,
		now:     time.Now,
		metrics: metrics,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns the cached response for key, calling render on a miss
func (c *ResponseCache) Fetch(key string, render func() (*Rendered, error)) (*Rendered, error) {
	if c.ttl <= 0 {
		resp, err := render()
		if err != nil {
			return nil, err
		}
		resp.ETag = computeETag(resp.Body)
		return resp, nil
	}

	if resp, ok := c.lookup(key); ok {
		c.record("hit")
		return resp, nil
	}
	c.record("miss")

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if resp, ok := c.lookup(key); ok {
			return resp, nil
		}
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		resp, err := render()
		if err != nil {
			return nil, err
		}
		resp.ETag = computeETag(resp.Body)
		c.store(key, resp, gen)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Rendered), nil
}

// Purge drops every entry. Renders already in flight are returned to their
// callers but not stored.
func (c *ResponseCache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.gen++
	c.mu.Unlock()
}

// store saves resp under key unless a purge happened since gen was read.
// Expired entries are swept on every store.
func (c *ResponseCache) store(key string, resp *Rendered, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{resp: resp, expires: now.Add(c.ttl)}
}

// Len returns the number of entries, expired ones included
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResponseCache) lookup(key string) (*Rendered, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expires) {
		return nil, false
	}
	return e.resp, true
}

func (c *ResponseCache) record(result string) {
	if c.metrics != nil {
		c.metrics.cacheLookups.WithLabelValues(result).Inc()
	}
}

// computeETag returns a strong ETag for body
func computeETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
