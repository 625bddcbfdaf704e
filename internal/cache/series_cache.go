package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/salespulse/salespulse-go/internal/models"
)

// seriesCacheEntry wraps a cached series with its metadata.
type seriesCacheEntry struct {
	Series   []models.SalesDataPoint `json:"series"`
	CachedAt time.Time               `json:"cached_at"`
}

// SeriesCacheStats tracks cache performance metrics.
type SeriesCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	mu     sync.RWMutex
}

// RedisSeriesCache keeps generated series in Redis so every panel of a
// dashboard session reads the same synthetic data instead of re-rolling it
// per request.
type RedisSeriesCache struct {
	redis  *redis.Client
	ttl    time.Duration
	stats  *SeriesCacheStats
	prefix string
}

// NewRedisSeriesCache creates a Redis-backed series cache with the given TTL.
func NewRedisSeriesCache(redisClient *redis.Client, ttl time.Duration) *RedisSeriesCache {
	return &RedisSeriesCache{
		redis:  redisClient,
		ttl:    ttl,
		stats:  &SeriesCacheStats{},
		prefix: "series_cache:",
	}
}

// Key derives the cache key for a series request. Seed participates so a
// re-seeded session gets fresh data.
func (c *RedisSeriesCache) Key(req models.SeriesRequest) string {
	return fmt.Sprintf("%s%s:%d:%s:%d", c.prefix, req.Start.Format("2006-01-02"), req.Count, req.Interval, req.Seed)
}

// Get retrieves a cached series by request.
func (c *RedisSeriesCache) Get(ctx context.Context, req models.SeriesRequest) ([]models.SalesDataPoint, bool) {
	data, err := c.redis.Get(ctx, c.Key(req)).Result()
	if err == redis.Nil {
		c.recordMiss()
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Warn("Redis error reading cached series")
		c.recordMiss()
		return nil, false
	}

	var entry seriesCacheEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		logrus.WithError(err).Warn("Failed to decode cached series")
		c.recordMiss()
		return nil, false
	}

	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	return entry.Series, true
}

// Set stores a generated series under its request key.
func (c *RedisSeriesCache) Set(ctx context.Context, req models.SeriesRequest, series []models.SalesDataPoint) {
	entry := seriesCacheEntry{
		Series:   series,
		CachedAt: time.Now(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode series for caching")
		return
	}

	if err := c.redis.Set(ctx, c.Key(req), data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to cache series")
		return
	}

	c.stats.mu.Lock()
	c.stats.Sets++
	c.stats.mu.Unlock()
}

// Stats returns a copy of the current cache counters.
func (c *RedisSeriesCache) Stats() SeriesCacheStats {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()
	return SeriesCacheStats{
		Hits:   c.stats.Hits,
		Misses: c.stats.Misses,
		Sets:   c.stats.Sets,
	}
}

func (c *RedisSeriesCache) recordMiss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}
