// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// Entries are evicted when the cache exceeds its capacity (least recently
// used first) or, when a TTL is configured, on the first Get after they
// expire. The country list source uses it to avoid refetching the remote
// list on every request:
//
//	c := cache.NewLRUCache[string, []string](8, cache.WithTTL(24*time.Hour))
//	c.Put("countries", names)
//	names, ok := c.Get("countries")
//
// All operations are O(1) and safe for concurrent use.
package cache
