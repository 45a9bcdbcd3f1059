package storage

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const devicePrefix = "device:"

// RedisDeviceStore implements DeviceStore on Redis.
type RedisDeviceStore struct {
	Client *redis.Client
}

// NewRedisDeviceStore creates a Redis-backed device store.
func NewRedisDeviceStore(client *redis.Client) *RedisDeviceStore {
	return &RedisDeviceStore{Client: client}
}

func deviceKey(deviceID, key string) string {
	return devicePrefix + deviceID + ":" + key
}

func (s *RedisDeviceStore) Get(ctx context.Context, deviceID, key string) (string, error) {
	val, err := s.Client.Get(ctx, deviceKey(deviceID, key)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisDeviceStore) Set(ctx context.Context, deviceID, key, value string) error {
	return s.Client.Set(ctx, deviceKey(deviceID, key), value, 0).Err()
}

func (s *RedisDeviceStore) Delete(ctx context.Context, deviceID, key string) error {
	return s.Client.Del(ctx, deviceKey(deviceID, key)).Err()
}

func (s *RedisDeviceStore) Clear(ctx context.Context, deviceID string) error {
	keys := make([]string, 0, len(knownKeys))
	for _, k := range knownKeys {
		keys = append(keys, deviceKey(deviceID, k))
	}
	return s.Client.Del(ctx, keys...).Err()
}
