package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formguard/pkg/cache"
)

func TestLRUCache_Basic(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("get non-existent", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("update existing", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](3)

		c.Put("a", 1)
		old, existed := c.Put("a", 2)
		assert.True(t, existed)
		assert.Equal(t, 1, old)

		val, _ := c.Get("a")
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRUCache_Eviction(t *testing.T) {
	t.Run("evict least recently used", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok)
		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
	})

	t.Run("callback sees evicted entry", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](1)
		var evicted []string
		c.SetEvictCallback(func(key string, _ int) { evicted = append(evicted, key) })

		c.Put("a", 1)
		c.Put("b", 2)
		c.Remove("b")
		assert.Equal(t, []string{"a", "b"}, evicted)
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		assert.Panics(t, func() { cache.NewLRUCache[string, int](0) })
		assert.Panics(t, func() { cache.NewLRUCache[string, int](-1) })
	})
}

func TestLRUCache_TTL(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	c := cache.NewLRUCache[string, []string](4, cache.WithTTL(time.Hour), cache.WithClock(clock))
	var expired []string
	c.SetEvictCallback(func(key string, _ []string) { expired = append(expired, key) })

	c.Put("countries", []string{"Ireland"})

	now = now.Add(59 * time.Minute)
	val, ok := c.Get("countries")
	assert.True(t, ok)
	assert.Equal(t, []string{"Ireland"}, val)

	now = now.Add(time.Minute)
	_, ok = c.Get("countries")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []string{"countries"}, expired)

	t.Run("put resets expiry", func(t *testing.T) {
		c.Put("k", nil)
		now = now.Add(50 * time.Minute)
		c.Put("k", []string{"x"})
		now = now.Add(50 * time.Minute)
		_, ok := c.Get("k")
		assert.True(t, ok)
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		c := cache.NewLRUCache[string, int](1, cache.WithTTL(0), cache.WithClock(clock))
		c.Put("a", 1)
		now = now.Add(1000 * time.Hour)
		_, ok := c.Get("a")
		assert.True(t, ok)
	})
}

func TestLRUCache_Clear(t *testing.T) {
	c := cache.NewLRUCache[int, int](3)
	count := 0
	c.SetEvictCallback(func(int, int) { count++ })
	c.Put(1, 1)
	c.Put(2, 2)

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 2, count)

	_, existed := c.Remove(1)
	assert.False(t, existed)
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := cache.NewLRUCache[string, int](50)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%60)
			c.Put(key, i)
			c.Get(key)
			if i%7 == 0 {
				c.Remove(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 50)
}
