package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := NewCache(time.Minute)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	c.Set(CacheAccounts, "accounts:1", []string{"checking"})
	c.Wait()

	v, ok := c.Get("accounts:1")
	require.True(t, ok)
	assert.Equal(t, []string{"checking"}, v)

	c.Del(CacheAccounts, "accounts:1")
	_, ok = c.Get("accounts:1")
	assert.False(t, ok)
}

func TestCacheClearNamespace(t *testing.T) {
	c := newTestCache(t)
	c.Set(CacheTransactions, "transactions:1::", 1)
	c.Set(CacheTransactions, "transactions:1:2024-11-05:", 2)
	c.Set(CacheAccounts, "accounts:1", 3)
	c.Wait()

	c.Clear(CacheTransactions)

	_, ok := c.Get("transactions:1::")
	assert.False(t, ok)
	_, ok = c.Get("transactions:1:2024-11-05:")
	assert.False(t, ok)
	v, ok := c.Get("accounts:1")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestCacheSetIfCurrentSkipsStaleLoads(t *testing.T) {
	c := newTestCache(t)

	// a load starts, then a write invalidates the namespace before it lands
	version := c.Version(CacheAccounts)
	c.Del(CacheAccounts, "accounts:1")
	assert.False(t, c.SetIfCurrent(CacheAccounts, "accounts:1", "stale", version))
	c.Wait()
	_, ok := c.Get("accounts:1")
	assert.False(t, ok)

	// other namespaces are unaffected
	assert.True(t, c.SetIfCurrent(CacheTransactions, "transactions:1::", "fresh", c.Version(CacheTransactions)))

	version = c.Version(CacheAccounts)
	assert.True(t, c.SetIfCurrent(CacheAccounts, "accounts:1", "fresh", version))
	c.Wait()
	v, ok := c.Get("accounts:1")
	require.True(t, ok)
	assert.Equal(t, "fresh", v)

	c.Clear(CacheAccounts)
	assert.NotEqual(t, version, c.Version(CacheAccounts))
}

func TestCacheClearUnknownNamespace(t *testing.T) {
	c := newTestCache(t)
	assert.NotPanics(t, func() { c.Clear("nothing") })
}
