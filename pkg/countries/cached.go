package countries

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/formguard/pkg/cache"
)

const cacheKey = "countries"

// CachedOption configures Cached.
type CachedOption func(*cached)

// WithFailureTTL remembers a failed fetch for d and returns the same error
// without calling the source until it passes. Zero disables it.
func WithFailureTTL(d time.Duration) CachedOption {
	return func(c *cached) {
		if d > 0 {
			c.failureTTL = d
		}
	}
}

// WithCacheClock overrides the clock used for WithFailureTTL.
func WithCacheClock(now func() time.Time) CachedOption {
	return func(c *cached) {
		if now != nil {
			c.now = now
		}
	}
}

type cached struct {
	src        Source
	lru        *cache.LRUCache[string, []string]
	failureTTL time.Duration
	now        func() time.Time

	mu        sync.Mutex
	lastErr   error
	failUntil time.Time
}

// Cached keeps the last successful result of src in an in-memory LRU.
// Errors are not cached unless WithFailureTTL is set, so by default a later
// call retries the source.
func Cached(src Source, c *cache.LRUCache[string, []string], opts ...CachedOption) Source {
	s := &cached{src: src, lru: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (c *cached) Countries(ctx context.Context) ([]string, error) {
	if names, ok := c.lru.Get(cacheKey); ok {
		return slices.Clone(names), nil
	}
	if err := c.recentFailure(); err != nil {
		return nil, err
	}

	names, err := c.src.Countries(ctx)
	if err != nil {
		c.rememberFailure(ctx, err)
		return nil, err
	}
	c.lru.Put(cacheKey, slices.Clone(names))
	return names, nil
}

func (c *cached) recentFailure() error {
	if c.failureTTL == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastErr != nil && c.now().Before(c.failUntil) {
		return c.lastErr
	}
	return nil
}

// rememberFailure skips errors caused by the caller going away; those say
// nothing about the upstream.
func (c *cached) rememberFailure(ctx context.Context, err error) {
	if c.failureTTL == 0 || errors.Is(ctx.Err(), context.Canceled) {
		return
	}
	c.mu.Lock()
	c.lastErr = err
	c.failUntil = c.now().Add(c.failureTTL)
	c.mu.Unlock()
}
