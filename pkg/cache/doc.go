// Package cache provides a generic, thread-safe LRU cache used to bound
// per-key resources such as the live notification broadcasters.
//
// When the cache is full, Put and GetOrCreate evict the least recently used
// entry and pass it to the eviction callback, which is where resources are
// released:
//
//	c := cache.NewLRUCache[string, io.Closer](100)
//	c.SetEvictCallback(func(key string, v io.Closer) { _ = v.Close() })
//	v := c.GetOrCreate("default", open)
package cache
