package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/kosuke/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the progress key.
const DefaultPrefix = "kosuke:"

// Store implements ports.ProgressStore using a single Redis key.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of the progress record.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the Redis key holding the record.
func (s *Store) Key() string {
	return s.prefix + "progress"
}

// Save persists the progress to Redis, refreshing the TTL.
func (s *Store) Save(ctx context.Context, progress *domain.SetupProgress) error {
	data, err := domain.MarshalProgress(progress)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.Key(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the progress from Redis.
func (s *Store) Load(ctx context.Context) (*domain.SetupProgress, error) {
	val, err := s.client.Get(ctx, s.Key()).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return domain.UnmarshalProgress(val)
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.Key()).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
