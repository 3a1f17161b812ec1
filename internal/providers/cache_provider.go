package providers

import (
	"odh/internal/structures"
	"time"
	"unsafe"

	"github.com/coocood/freecache"
)

// CacheProviderInterface is the shared cache backend. Expiry is the
// backend's job: entries whose TTL elapsed disappear on their own. Reads
// and writes are atomic per key, last writer wins.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Count() int64
}

type CacheProvider struct {
	cache *freecache.Cache
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Cache disabled")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	logger.Infof(TypeApp, "Cache initialized: %dMB", conf.Cache.Size)

	return &CacheProvider{
		cache: freecache.NewCache(sizeBytes),
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// Safe when the result is only read (not modified), which is the case
// for freecache, which copies keys internally.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte, ttl time.Duration) {
	seconds := int(ttl / time.Second)
	if ttl > 0 && seconds == 0 {
		seconds = 1
	}
	_ = c.cache.Set(unsafeStringToBytes(key), value, seconds)
}

func (c *CacheProvider) Count() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)                 { return nil, false }
func (n *noopCache) Set(_ string, _ []byte, _ time.Duration)     {}
func (n *noopCache) Count() int64                                { return 0 }
