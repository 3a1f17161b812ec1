package services

import (
	"context"
	"odh/internal/models"
	"odh/internal/providers"
	"time"
)

const keyPrefix = "outreach:"

// UserKey namespaces a user's enrollment payload.
func UserKey(username string) string {
	return keyPrefix + "user:" + username
}

// CourseKey namespaces a course's metadata payload.
func CourseKey(school, slug string) string {
	return keyPrefix + "course:" + school + "/" + slug
}

// CourseUsersKey namespaces a course's roster payload.
func CourseUsersKey(school, slug string) string {
	return keyPrefix + "course_users:" + school + "/" + slug
}

type FetchFunc func(ctx context.Context) ([]byte, error)

// CacheServiceInterface is the read-through cache store. A fresh entry is
// served as-is; an expired or missing entry triggers a synchronous fetch.
// A failed fetch propagates even when an expired entry still sits in the
// backend: activity windows are time-sensitive, and a stale flag is worse
// than an explicit error.
type CacheServiceInterface interface {
	GetOrRefresh(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error)
}

type CacheService struct {
	cache      providers.CacheProviderInterface
	compressor providers.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewCacheService(cache providers.CacheProviderInterface, compressor providers.CompressorInterface, logger providers.Logger) CacheServiceInterface {
	return &CacheService{
		cache:      cache,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

func (cs *CacheService) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	if raw, ok := cs.cache.Get(key); ok {
		entry, err := cs.decode(raw)
		switch {
		case err != nil:
			cs.logger.Warnf(providers.TypeApp, "Unreadable cache entry %s, refetching: %s", key, err)
		case entry.Fresh(cs.now(), ttl):
			return entry.Data, nil
		}
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	cs.store(key, ttl, data)
	return data, nil
}

func (cs *CacheService) store(key string, ttl time.Duration, data []byte) {
	encoded, err := models.NewCacheEntry(cs.now(), data).Encode()
	if err != nil {
		cs.logger.Errorf(providers.TypeApp, "Cannot encode cache entry %s: %s", key, err)
		return
	}
	compressed, err := cs.compressor.Compress(encoded)
	if err != nil {
		cs.logger.Errorf(providers.TypeApp, "Cannot compress cache entry %s: %s", key, err)
		return
	}
	// Backend expiry matches the freshness window, so the fetched_at check
	// and the backend agree on when an entry dies.
	cs.cache.Set(key, compressed, ttl)
}

func (cs *CacheService) decode(raw []byte) (*models.CacheEntry, error) {
	decompressed, err := cs.compressor.Decompress(raw)
	if err != nil {
		return nil, err
	}
	return models.DecodeCacheEntry(decompressed)
}
