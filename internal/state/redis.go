package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/terra-clan/ia-booster/internal/config"
)

const (
	redisKeyPrefix = "iabooster:"
	scanBatch      = 100
)

// RedisStore implements Store on Redis. Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("connected to redis", "address", cfg.Address, "db", cfg.DB)

	return &RedisStore{
		client: client,
		prefix: redisKeyPrefix,
	}, nil
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

// Get returns the value of key or ErrNotFound
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key with an optional TTL
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// DeletePrefix removes all keys with the given prefix. The whole SCAN
// completes before any deletion so the cursor stays valid.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	pattern := fmt.Sprintf("%s*", s.key(prefix))
	var cursor uint64
	var keys []string

	for {
		page, nextCursor, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan keys: %w", err)
		}
		keys = append(keys, page...)

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	var keysDeleted int
	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		n, err := s.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return keysDeleted, fmt.Errorf("failed to delete keys: %w", err)
		}
		keysDeleted += int(n)
	}

	slog.Debug("redis prefix deleted", "prefix", prefix, "keys_deleted", keysDeleted)

	return keysDeleted, nil
}

// PurgeExpired is a no-op: Redis evicts expired keys itself
func (s *RedisStore) PurgeExpired(context.Context) (int, error) {
	return 0, nil
}

// Type returns the backend name
func (s *RedisStore) Type() string {
	return "redis"
}

// HealthCheck verifies Redis connectivity
func (s *RedisStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Open creates the store selected by configuration
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.State.Backend {
	case "redis":
		return NewRedisStore(ctx, cfg.Redis)
	case "memory", "":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown state backend: %q", cfg.State.Backend)
}
