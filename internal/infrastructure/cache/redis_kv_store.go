package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orderpad/backend/internal/domain/shared"
)

// DefaultKeyPrefix namespaces every key this service writes
const DefaultKeyPrefix = "orderpad:"

// RedisKeyValueStore implements KeyValueStore using Redis.
// Entries never expire.
type RedisKeyValueStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisKeyValueStore connects to Redis and verifies the connection
func NewRedisKeyValueStore(cfg RedisConfig) (*RedisKeyValueStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisKeyValueStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisKeyValueStoreWithClient creates a store with an existing Redis client
func NewRedisKeyValueStoreWithClient(client *redis.Client, keyPrefix string) *RedisKeyValueStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisKeyValueStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the stored value or shared.ErrKeyNotFound
func (s *RedisKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return v, nil
}

// Put stores value under key without expiry
func (s *RedisKeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to put key %q: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *RedisKeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisKeyValueStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisKeyValueStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisKeyValueStore implements KeyValueStore
var _ shared.KeyValueStore = (*RedisKeyValueStore)(nil)
