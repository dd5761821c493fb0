// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"servicehub/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs the provider-list results cache.
	CacheClient *redis.Client
	// SessionCacheClient is the dedicated client for search-session state.
	SessionCacheClient *redis.Client
	// GeoCacheClient is the dedicated client for reverse-geocode results.
	GeoCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (DB %d): %v", db, err)
	}
	return client
}

// InitCache initializes the Redis client for the results cache.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
}

// GetCacheClient returns the results cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitSessionCache initializes the Redis client for search sessions.
func InitSessionCache() {
	SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB)
}

// GetSessionCacheClient returns the search-session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitGeoCache initializes the Redis client for geocoding results.
func InitGeoCache() {
	GeoCacheClient = newRedisClient(config.AppConfig.RedisGeoDB)
}

// GetGeoCacheClient returns the geocode cache client.
func GetGeoCacheClient() *redis.Client {
	if GeoCacheClient == nil {
		InitGeoCache()
	}
	return GeoCacheClient
}
