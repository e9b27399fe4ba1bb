package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/moodlit/internal/constants"
)

const redisOpTimeout = 3 * time.Second

var (
	newRedisClient = redis.NewClient
	redisPing      = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
)

// RedisStore keeps every key under the "moodlit:" namespace of one database
type RedisStore struct {
	url    string
	prefix string
	client *redis.Client
}

func NewRedisStore(url string) *RedisStore {
	return &RedisStore{
		url:    url,
		prefix: constants.AppName + ":",
	}
}

// IsRedisURL reports whether connStr names a Redis backend
func IsRedisURL(connStr string) bool {
	return strings.HasPrefix(connStr, "redis://") || strings.HasPrefix(connStr, "rediss://")
}

// Options parses the URL into client options without connecting
func (s *RedisStore) Options() (*redis.Options, error) {
	opts, err := redis.ParseURL(s.url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = redisOpTimeout
	opts.WriteTimeout = redisOpTimeout
	opts.PoolSize = 4
	opts.MinIdleConns = 1
	return opts, nil
}

func (s *RedisStore) connect() error {
	opts, err := s.Options()
	if err != nil {
		return err
	}

	client := newRedisClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisPing(ctx, client); err != nil {
		_ = client.Close()
		return fmt.Errorf("pinging redis: %w", err)
	}
	s.client = client
	return nil
}

// Init only verifies connectivity since Redis needs no schema
func (s *RedisStore) Init() error {
	return s.Load()
}

func (s *RedisStore) Load() error {
	if s.client != nil {
		return nil
	}
	return s.connect()
}

func (s *RedisStore) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

var _ HealthChecker = (*RedisStore)(nil)

// Health pings the server, bounded by ctx
func (s *RedisStore) Health(ctx context.Context) error {
	if s.client == nil {
		return ErrNotLoaded
	}
	return redisPing(ctx, s.client)
}

func (s *RedisStore) Get(key string) (string, bool, error) {
	if s.client == nil {
		return "", false, ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(key, value string) error {
	if s.client == nil {
		return ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(key string) error {
	if s.client == nil {
		return ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Keys() ([]string, error) {
	if s.client == nil {
		return nil, ErrNotLoaded
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *RedisStore) GetConfigPath() string {
	return "redis"
}
