package providers

import (
	"garage/internal/structures"

	"github.com/coocood/freecache"
)

const bytesPerMB = 1 << 20

// CacheProviderInterface caches serialized responses for the read-only reference collections.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

type CacheProvider struct {
	cache      *freecache.Cache
	ttlSeconds int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	c := conf.Cache
	if !c.Enabled || c.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &noopCache{}
	}

	// freecache expires in whole seconds; 0 would mean "never"
	ttl := int(c.TTL.Seconds())
	if ttl < 1 {
		ttl = 1
	}
	logger.Infof(TypeApp, "Response cache initialized: %dMB, TTL=%ds", c.Size, ttl)

	return &CacheProvider{
		cache:      freecache.NewCache(c.Size * bytesPerMB),
		ttlSeconds: ttl,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set silently drops values freecache refuses (larger than 1/1024 of the cache).
func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttlSeconds)
}

// Clear drops every entry; used after the dataset is reset to its seed.
func (c *CacheProvider) Clear() {
	c.cache.Clear()
}

type noopCache struct{}

func (*noopCache) Get(string) ([]byte, bool) { return nil, false }
func (*noopCache) Set(string, []byte)        {}
func (*noopCache) Clear()                    {}
