package providers

import (
	"skinwatch/internal/structures"
	"time"

	"github.com/coocood/freecache"
)

// CacheProviderInterface holds short-lived string lookups, such as the
// address resolved for a scan owner. Empty values are never stored.
type CacheProviderInterface interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Del(key string)
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

// NewCacheProvider sizes the cache in MB from cache.size. A zero size or a
// disabled cache yields a cache that always misses.
func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Lookup cache disabled")
		return &noopCache{}
	}

	ttl := max(int(conf.Cache.TTL/time.Second), 1)
	logger.Infof(TypeApp, "Lookup cache initialized: %dMB, TTL=%s", conf.Cache.Size, time.Duration(ttl)*time.Second)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
	}
}

func (c *CacheProvider) Get(key string) (string, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil || len(val) == 0 {
		return "", false
	}
	return string(val), true
}

func (c *CacheProvider) Set(key, value string) {
	if value == "" {
		return
	}
	_ = c.cache.Set([]byte(key), []byte(value), c.ttl)
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del([]byte(key))
}

type noopCache struct{}

func (n *noopCache) Get(_ string) (string, bool) { return "", false }
func (n *noopCache) Set(_, _ string)             {}
func (n *noopCache) Del(_ string)                {}
