package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	domrepo "PriceCast/internal/domain/repository"
)

// RedisObjectStore implements ObjectStore over Redis. Blobs are opaque;
// keys are namespaced under a prefix. Artifacts do not expire.
type RedisObjectStore struct {
	cli    *redis.Client
	prefix string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisObjectStore(cfg RedisConfig) *RedisObjectStore {
	cli := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "pricecast:"
	}
	return &RedisObjectStore{cli: cli, prefix: prefix}
}

func (s *RedisObjectStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.cli.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis put %q: %w", key, err)
	}
	return nil
}

func (s *RedisObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.cli.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domrepo.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return b, nil
}

func (s *RedisObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.cli.Scan(ctx, 0, s.prefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(s.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func (s *RedisObjectStore) Close() error {
	return s.cli.Close()
}
