package models

import (
	"time"

	json "github.com/goccy/go-json"
)

// CacheEntry wraps a raw upstream payload with the moment it was fetched.
// The payload is stored verbatim and never mutated; a refresh replaces the
// whole entry.
type CacheEntry struct {
	FetchedAt int64           `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

func NewCacheEntry(now time.Time, data []byte) *CacheEntry {
	return &CacheEntry{
		FetchedAt: now.Unix(),
		Data:      data,
	}
}

// Fresh reports whether the entry is still within its freshness window.
// An entry fetched at t0 with ttl T stops being fresh exactly at t0+T.
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	return e.Age(now) < ttl
}

func (e *CacheEntry) Age(now time.Time) time.Duration {
	return time.Duration(now.Unix()-e.FetchedAt) * time.Second
}

func (e *CacheEntry) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeCacheEntry(raw []byte) (*CacheEntry, error) {
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
