package db

import (
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

const (
	CacheTransactions = "transactions"
	CacheAccounts     = "accounts"
)

// Cache is a ristretto cache that remembers which keys belong to which
// namespace so a whole namespace can be dropped at once.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration

	mu       sync.Mutex
	keys     map[string]map[string]struct{}
	versions map[string]uint64
}

func NewCache(ttl time.Duration) (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
		// each entry costs 1, without ristretto's per-item overhead
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{
		store: store,
		ttl:   ttl,
		keys:     make(map[string]map[string]struct{}),
		versions: make(map[string]uint64),
	}, nil
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *Cache) Set(namespace, key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(namespace, key, value)
}

// Version returns the invalidation count of namespace. Read it before
// loading a value and pass it to SetIfCurrent.
func (c *Cache) Version(namespace string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[namespace]
}

// SetIfCurrent stores value only if namespace has not been invalidated
// since version was read, so a slow load never overwrites a newer Del or
// Clear.
func (c *Cache) SetIfCurrent(namespace, key string, value interface{}, version uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[namespace] != version {
		return false
	}
	c.set(namespace, key, value)
	return true
}

// set must be called with mu held; ristretto applies the buffered write
// before any later Del.
func (c *Cache) set(namespace, key string, value interface{}) {
	if c.keys[namespace] == nil {
		c.keys[namespace] = make(map[string]struct{})
	}
	c.keys[namespace][key] = struct{}{}
	if c.ttl > 0 {
		c.store.SetWithTTL(key, value, 1, c.ttl)
		return
	}
	c.store.Set(key, value, 1)
}

func (c *Cache) Del(namespace, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[namespace]++
	delete(c.keys[namespace], key)
	c.store.Del(key)
}

// Clear drops every key set under namespace.
func (c *Cache) Clear(namespace string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[namespace]++
	for key := range c.keys[namespace] {
		c.store.Del(key)
	}
	delete(c.keys, namespace)
}

// Wait blocks until buffered writes are applied.
func (c *Cache) Wait() {
	c.store.Wait()
}

func (c *Cache) Close() {
	c.store.Close()
}
