package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ErrSuperseded is returned when a fetch was replaced by a newer fetch in the
// same scope before its result could be delivered. The stale result is
// discarded, never cached.
var ErrSuperseded = errors.New("fetch superseded by newer request")

// FetchFunc loads a value from the backend.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Cache coordinates fetches: results are cached per key for a TTL, concurrent
// fetches for an identical key share a single in-flight request, and
// successful mutations invalidate by resource prefix.
type Cache struct {
	store      *cache.Cache
	group      singleflight.Group
	defaultTTL time.Duration
	maxEntries int
	logger     *logrus.Logger

	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewCache creates a cache with the given default TTL and entry limit.
func NewCache(defaultTTL time.Duration, maxEntries int, logger *logrus.Logger) *Cache {
	if logger == nil {
		logger = logrus.New()
	}
	return &Cache{
		store:      cache.New(defaultTTL, defaultTTL*2),
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Fetch returns the cached value for key if fresh, otherwise runs fetch.
// Concurrent calls with an equal key share one in-flight request.
func (c *Cache) Fetch(ctx context.Context, key Key, ttl time.Duration, fetch FetchFunc) (interface{}, error) {
	ks := key.String()

	if v, ok := c.store.Get(ks); ok {
		c.recordHit()
		return v, nil
	}
	c.recordMiss()

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	v, err, shared := c.group.Do(ks, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		// A canceled fetch that still returned data was superseded; its
		// result must not land in the cache.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.maxEntries > 0 && c.store.ItemCount() >= c.maxEntries {
			c.store.DeleteExpired()
		}
		c.store.Set(ks, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.WithField("key", ks).Debug("Joined in-flight fetch")
	}
	return v, nil
}

// Invalidate drops every cached entry for the named resources. Called after
// successful mutations so the next read refetches instead of patching state.
func (c *Cache) Invalidate(resources ...string) {
	for ks := range c.store.Items() {
		for _, resource := range resources {
			if ks == resource || strings.HasPrefix(ks, resource+"?") {
				c.store.Delete(ks)
			}
		}
	}
}

// Flush drops all cached entries.
func (c *Cache) Flush() {
	c.store.Flush()
}

// Stats returns hit/miss counts and the hit ratio.
func (c *Cache) Stats() (hits, misses uint64, ratio float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	hits = c.hitCount
	misses = c.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.hitCount++
	c.mu.Unlock()
	QueryCacheHitsTotal.Inc()
	c.updateRatio()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.missCount++
	c.mu.Unlock()
	QueryCacheMissesTotal.Inc()
	c.updateRatio()
}

func (c *Cache) updateRatio() {
	_, _, ratio := c.Stats()
	QueryCacheHitRatio.Set(ratio)
}

// Scope serializes fetches for one view slot (for example "the chart pane"):
// starting a new fetch cancels and supersedes any fetch still in flight, so a
// late response for the previous selection is never delivered.
type Scope struct {
	cache *Cache

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewScope creates a supersede scope over the cache.
func (c *Cache) NewScope() *Scope {
	return &Scope{cache: c}
}

// Fetch behaves like Cache.Fetch but cancels any previous in-flight fetch in
// this scope. If this fetch is itself superseded before returning, the result
// is dropped and ErrSuperseded is returned.
func (s *Scope) Fetch(ctx context.Context, key Key, ttl time.Duration, fetch FetchFunc) (interface{}, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.gen++
	myGen := s.gen
	s.mu.Unlock()

	v, err := s.cache.Fetch(ctx, key, ttl, fetch)

	s.mu.Lock()
	stale := myGen != s.gen
	if !stale {
		cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	if stale {
		return nil, ErrSuperseded
	}
	return v, err
}

// Fetch is the typed convenience over Cache.Fetch.
func Fetch[T any](ctx context.Context, c *Cache, key Key, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Fetch(ctx, key, ttl, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// FetchScoped is the typed convenience over Scope.Fetch.
func FetchScoped[T any](ctx context.Context, s *Scope, key Key, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.Fetch(ctx, key, ttl, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
