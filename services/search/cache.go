package search

import (
	"context"
	"encoding/json"
	"sync"

	"servicehub/api"
	"servicehub/models"
	"servicehub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Subscriber is notified whenever a cache entry is replaced with a fresh
// page. Callbacks must be quick; they run on the fetching goroutine.
type Subscriber func(key string, page *models.SearchPage)

// ResultsCache is the request-keyed cache of provider-list responses and
// the only shared mutable state in the search core. Identical in-flight
// requests are collapsed to one network call; responses are applied in
// sequence order per key so a slow early response can never clobber a
// newer one.
type ResultsCache struct {
	API    api.ProviderAPI
	Redis  *redis.Client
	Logger *zap.Logger

	group singleflight.Group

	mu      sync.Mutex
	issued  map[string]uint64
	applied map[string]uint64
	subs    []Subscriber
}

func NewResultsCache(providerAPI api.ProviderAPI, redisClient *redis.Client, logger *zap.Logger) *ResultsCache {
	return &ResultsCache{
		API:     providerAPI,
		Redis:   redisClient,
		Logger:  logger,
		issued:  make(map[string]uint64),
		applied: make(map[string]uint64),
	}
}

// Subscribe registers a callback for entry replacements.
func (c *ResultsCache) Subscribe(fn Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// nextSeq issues a monotonically increasing sequence number for a key.
func (c *ResultsCache) nextSeq(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued[key]++
	return c.issued[key]
}

// Get returns the cached page for the intent's full parameter tuple, or
// fetches it. Concurrent callers with the same key share one flight: the
// second subscriber receives the first's result. Failures surface as a
// typed fetch error with no retry.
func (c *ResultsCache) Get(ctx context.Context, intent models.SearchIntent) (*models.SearchPage, error) {
	key := intent.CacheKey()

	if page := c.lookup(ctx, key); page != nil {
		return page, nil
	}

	seq := c.nextSeq(key)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.API.Search(ctx, intent)
	})
	if err != nil {
		return nil, NewFetchError(err)
	}
	page := v.(*models.SearchPage)
	c.store(ctx, key, seq, page)
	return page, nil
}

func (c *ResultsCache) lookup(ctx context.Context, key string) *models.SearchPage {
	if c.Redis == nil {
		return nil
	}
	data, err := c.Redis.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var page models.SearchPage
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		// Corrupt entry; drop it and refetch.
		c.Redis.Del(ctx, key)
		return nil
	}
	return &page
}

// store replaces only the entry for this key, and only when the response is
// not older than one already applied.
func (c *ResultsCache) store(ctx context.Context, key string, seq uint64, page *models.SearchPage) {
	c.mu.Lock()
	if seq < c.applied[key] {
		c.mu.Unlock()
		c.Logger.Debug("Discarding out-of-order search response", zap.String("key", key))
		return
	}
	c.applied[key] = seq
	subs := make([]Subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	if c.Redis != nil {
		data, err := json.Marshal(page)
		if err == nil {
			if err := c.Redis.Set(ctx, key, data, utils.SearchCacheTTL).Err(); err != nil {
				c.Logger.Warn("Failed to cache search results", zap.String("key", key), zap.Error(err))
			}
		}
	}
	for _, fn := range subs {
		fn(key, page)
	}
}

// InvalidateLists drops every cached provider-list entry. Called after any
// mutation that changes provider data.
func (c *ResultsCache) InvalidateLists(ctx context.Context) error {
	if c.Redis == nil {
		return nil
	}
	keys, err := c.Redis.Keys(ctx, utils.SearchCachePrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Redis.Del(ctx, keys...).Err()
}
