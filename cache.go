package profile

import (
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

// TriangulationCache keeps the triangulation of each dataset so that
// profiles of several fields of one dataset triangulate it only once.
// It is safe for concurrent use.
type TriangulationCache struct {
	c *cache.Cache

	hits, misses int64
}

type cachedTriangulation struct {
	ds  *Dataset
	tri *Triangulation
}

// NewTriangulationCache returns an empty cache. Entries expire after ttl;
// a ttl <= 0 keeps them until Flush.
func NewTriangulationCache(ttl time.Duration) *TriangulationCache {
	if ttl <= 0 {
		return &TriangulationCache{c: cache.New(cache.NoExpiration, 0)}
	}
	return &TriangulationCache{c: cache.New(ttl, 2*ttl)}
}

// Get returns the triangulation of ds, computing it on a miss. Entries
// are keyed by dataset name but only reused for the very same *Dataset.
func (tc *TriangulationCache) Get(ds *Dataset) (*Triangulation, error) {
	if v, ok := tc.c.Get(ds.Name); ok {
		if e := v.(cachedTriangulation); e.ds == ds {
			atomic.AddInt64(&tc.hits, 1)
			return e.tri, nil
		}
	}
	atomic.AddInt64(&tc.misses, 1)
	tri, err := Triangulate(ds)
	if err != nil {
		return nil, err
	}
	tc.c.SetDefault(ds.Name, cachedTriangulation{ds: ds, tri: tri})
	return tri, nil
}

// Stats returns the number of cache hits and misses so far.
func (tc *TriangulationCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&tc.hits), atomic.LoadInt64(&tc.misses)
}

// Flush drops all entries.
func (tc *TriangulationCache) Flush() { tc.c.Flush() }
