// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"tablenow/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DeviceClient is the Redis client backing per-device storage.
	DeviceClient *redis.Client
	// AuthCacheClient is the dedicated client for session-token caching.
	AuthCacheClient *redis.Client
	// FeedCacheClient is the dedicated client for the restaurant feed cache.
	FeedCacheClient *redis.Client
)

// InitDeviceStore initializes the Redis client for per-device storage
// (using DB from AppConfig for device keys).
func InitDeviceStore() {
	DeviceClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDeviceDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DeviceClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Device Store): %v", err)
	}
}

// GetDeviceClient returns the Redis client for per-device storage.
func GetDeviceClient() *redis.Client {
	if DeviceClient == nil {
		InitDeviceStore()
	}
	return DeviceClient
}

// InitAuthCache initializes the Redis client for session-token caching
// (using DB from AppConfig for auth cache).
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for session-token caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// InitFeedCache initializes the Redis client for the restaurant feed cache
// (using DB from AppConfig for feed keys).
func InitFeedCache() {
	FeedCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisFeedDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := FeedCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Feed Cache): %v", err)
	}
}

// GetFeedCacheClient returns the Redis client for the restaurant feed cache.
func GetFeedCacheClient() *redis.Client {
	if FeedCacheClient == nil {
		InitFeedCache()
	}
	return FeedCacheClient
}
