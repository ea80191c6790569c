package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/polarsight/sea-ice-analyst/internal/domain"
	"github.com/polarsight/sea-ice-analyst/internal/observability"
)

// Store holds parsed datasets keyed by the hash of their input bytes. The
// store is injectable so tests can disable caching or inspect what was
// cached. Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (*domain.Dataset, bool)
	Put(key string, ds *domain.Dataset)
}

// CachedLoader wraps a Loader with a content-addressed cache: the key is the
// SHA-256 of the uploaded bytes, so identical uploads return the identical
// parsed dataset. Parse failures are never cached; a corrected re-upload has
// different bytes and therefore a different key anyway.
type CachedLoader struct {
	inner   Loader
	store   Store
	metrics *observability.Metrics
}

// NewCachedLoader creates a cache decorator around a loader. A nil store
// disables caching entirely.
func NewCachedLoader(inner Loader, store Store, metrics *observability.Metrics) *CachedLoader {
	return &CachedLoader{inner: inner, store: store, metrics: metrics}
}

func (c *CachedLoader) Load(data []byte) (*domain.Dataset, error) {
	if c.store == nil {
		return c.inner.Load(data)
	}

	hash := sha256.Sum256(data)
	key := hex.EncodeToString(hash[:])

	if ds, ok := c.store.Get(key); ok {
		c.metrics.DatasetCache.WithLabelValues("hit").Inc()
		return ds, nil
	}
	c.metrics.DatasetCache.WithLabelValues("miss").Inc()

	ds, err := c.inner.Load(data)
	if err != nil {
		return nil, err
	}
	c.store.Put(key, ds)
	return ds, nil
}

// LRUStore is a thread-safe fixed-capacity LRU Store.
type LRUStore struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value *domain.Dataset
	prev  *entry
	next  *entry
}

// NewLRUStore creates an LRU store bounded to maxEntries datasets.
func NewLRUStore(maxEntries int) *LRUStore {
	return &LRUStore{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *LRUStore) Get(key string) (*domain.Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *LRUStore) Put(key string, ds *domain.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = ds
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: ds}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

// Len returns the number of cached datasets.
func (c *LRUStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LRUStore) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *LRUStore) addToFront(e *entry) {
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

func (c *LRUStore) remove(e *entry) {
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

func (c *LRUStore) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
