// Package redis stores habit blobs in a Redis server.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/storage"
)

type Store struct {
	url    string
	client *redis.Client
	owned  bool
}

// IsURL reports whether a config value names a Redis server.
func IsURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// New returns a store that connects to redisURL on Init or Load.
func New(redisURL string) *Store {
	return &Store{url: redisURL}
}

// NewWithClient wraps an existing client. Close leaves the client open.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) connect() error {
	if s.client == nil {
		opts, err := redis.ParseURL(s.url)
		if err != nil {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		s.client = redis.NewClient(opts)
		s.owned = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RedisPingTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return nil
}

// Init connects to the server. Redis needs no schema.
func (s *Store) Init() error {
	return s.connect()
}

func (s *Store) Load() error {
	return s.connect()
}

func (s *Store) Close() error {
	if s.client == nil || !s.owned {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func key(k string) string {
	return constants.RedisKeyPrefix + k
}

func (s *Store) Get(ctx context.Context, k string) ([]byte, error) {
	if s.client == nil {
		return nil, storage.ErrNotLoaded
	}

	value, err := s.client.Get(ctx, key(k)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", k, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, k string, value []byte) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}

	// No expiry; habits live until removed
	if err := s.client.Set(ctx, key(k), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", k, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, k string) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}

	if err := s.client.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", k, err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return "redis"
}
