package httpadapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/weather-analytics/internal/observability"
	"github.com/couchcryptid/weather-analytics/internal/pipeline"
)

// ReportRunner computes a report for a day count and seed.
// *pipeline.Pipeline satisfies it.
type ReportRunner interface {
	Run(ctx context.Context, days int, seed uint64) (pipeline.Result, error)
}

// CachedRunner wraps a ReportRunner with an in-memory LRU cache. Reports are
// deterministic in (days, seed), so a cached report answers repeat requests.
type CachedRunner struct {
	inner   ReportRunner
	cache   *lruCache[pipeline.Result]
	metrics *observability.Metrics
}

// NewCachedRunner creates a cache decorator around a runner.
func NewCachedRunner(inner ReportRunner, maxEntries int, metrics *observability.Metrics) *CachedRunner {
	return &CachedRunner{
		inner:   inner,
		cache:   newLRUCache[pipeline.Result](maxEntries),
		metrics: metrics,
	}
}

func (c *CachedRunner) Run(ctx context.Context, days int, seed uint64) (pipeline.Result, error) {
	key := fmt.Sprintf("%d|%d", days, seed)
	if res, ok := c.cache.get(key); ok {
		c.metrics.ReportCache.WithLabelValues("hit").Inc()
		return res, nil
	}
	c.metrics.ReportCache.WithLabelValues("miss").Inc()

	res, err := c.inner.Run(ctx, days, seed)
	if err != nil {
		return res, err
	}
	c.cache.put(key, res)
	return res, nil
}

// lruCache is a simple thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: max(1, maxEntries),
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
