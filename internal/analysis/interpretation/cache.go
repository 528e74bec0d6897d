package interpretation

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"
)

// cache defaults
const (
	DefaultCacheCapacity = 256
	DefaultCacheTTL      = 15 * time.Minute
)

type cacheEntry struct {
	result  *Result
	created time.Time
}

// resultCache is a bounded, TTL-aware map keyed by a content hash of the
// request. Entries are immutable once stored; a single mutex is enough since
// a lost race merely recomputes an equivalent result.
type resultCache struct {
	mu       sync.Mutex
	entries  map[uint64]cacheEntry
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

func newResultCache(capacity int, ttl time.Duration) *resultCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &resultCache{
		entries:  make(map[uint64]cacheEntry),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// get returns a live cached result, lazily expiring stale entries.
func (c *resultCache) get(key uint64) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.created) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.result, true
}

// put stores a result, evicting the oldest entry once capacity is exceeded.
func (c *resultCache) put(key uint64, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{result: result, created: c.now()}

	for len(c.entries) > c.capacity {
		var oldestKey uint64
		var oldest time.Time
		first := true
		for k, e := range c.entries {
			if first || e.created.Before(oldest) {
				oldestKey, oldest = k, e.created
				first = false
			}
		}
		delete(c.entries, oldestKey)
	}
}

// len reports the current entry count.
func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey hashes the chord list and every option that affects the output.
func cacheKey(chords []string, opts Options) uint64 {
	h := fnv.New64a()
	for _, chord := range chords {
		_, _ = h.Write([]byte(chord))
		_, _ = h.Write([]byte{0})
	}
	_, _ = fmt.Fprintf(h, "|%s|%s|%.4f|%d|%t",
		opts.ParentKey, opts.PedagogicalLevel, opts.ConfidenceThreshold,
		opts.MaxAlternatives, opts.ForceMultipleInterpretations)
	return h.Sum64()
}
