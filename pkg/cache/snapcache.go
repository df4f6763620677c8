package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SnapCache memoizes port and sea-node snap lookups keyed by rounded query
// coordinates, so repeated queries against the same location do not repeat
// the k-NN search.
type SnapCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSnapResult is the memoized outcome of a snap operation.
type CachedSnapResult struct {
	NodeID      int     `json:"node_id"`
	UNLOCODE    string  `json:"unlocode,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DistanceKM  float64 `json:"distance_km"`
	ComputedAt  int64   `json:"computed_at"`
}

// NewSnapCache creates a cache for port/sea-node snap results.
func NewSnapCache(cache Cache, defaultTTL time.Duration) *SnapCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SnapCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get returns a memoized snap result for the given kind ("port" or
// "sea_node") and query coordinates, if present.
func (sc *SnapCache) Get(ctx context.Context, kind string, lat, lon float64) (*CachedSnapResult, bool, error) {
	key := BuildSnapKey(kind, lat, lon)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSnapResult
	if err := json.Unmarshal(data, &result); err != nil {
		_ = sc.cache.Delete(ctx, key)
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores a snap result for the given kind and query coordinates.
func (sc *SnapCache) Set(ctx context.Context, kind string, lat, lon float64, result *CachedSnapResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSnapKey(kind, lat, lon)

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// InvalidateKind removes all memoized results of a given kind.
func (sc *SnapCache) InvalidateKind(ctx context.Context, kind string) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, fmt.Sprintf("snap:%s:*", kind))
}

// InvalidateAll removes all memoized snap results.
func (sc *SnapCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "snap:*")
}
