package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"toiletmap-api/internal/geo"
	"toiletmap-api/internal/models"

	"github.com/redis/go-redis/v9"
)

// KV is the subset of a redis client the search cache needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// OpenRedis returns a client for addr, or nil when addr is empty.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// SearchCache stores place search results in redis.
type SearchCache struct {
	kv  KV
	ttl time.Duration
}

// NewSearchCache caches place search results in kv for ttl.
func NewSearchCache(kv KV, ttl time.Duration) *SearchCache {
	return &SearchCache{kv: kv, ttl: ttl}
}

// SearchCacheKey identifies a place search by query, rounded center and radius.
func SearchCacheKey(query string, center models.Location, radius float64) string {
	k := geo.KeyOf(center)
	return "search:place:" + query + ":" +
		strconv.FormatFloat(k.Lat, 'f', geo.Precision, 64) + "," +
		strconv.FormatFloat(k.Lon, 'f', geo.Precision, 64) + ":" +
		strconv.FormatFloat(radius, 'f', -1, 64)
}

// Get returns the cached candidates. ok is false on a miss.
func (c *SearchCache) Get(ctx context.Context, key string) (hits []models.SearchCandidate, ok bool, err error) {
	raw, err := c.kv.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("repository: failed to read search cache: %w", err)
	}
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, false, fmt.Errorf("repository: failed to decode search cache: %w", err)
	}
	return hits, true, nil
}

// Set stores hits under key.
func (c *SearchCache) Set(ctx context.Context, key string, hits []models.SearchCandidate) error {
	raw, err := json.Marshal(hits)
	if err != nil {
		return fmt.Errorf("repository: failed to encode search cache: %w", err)
	}
	if err := c.kv.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("repository: failed to write search cache: %w", err)
	}
	return nil
}
