package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.VerdictStore using Redis.
// Each verdict is a JSON string key; a per-machine ZSET indexes the inputs,
// scored by expiry for lazy cleanup.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for verdicts.
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
		prefix: "turing:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// machine names are query-escaped so the ':' separator stays unambiguous.
func (s *Store) key(machine, input string) string {
	return s.prefix + "verdict:" + url.QueryEscape(machine) + ":" + input
}

func (s *Store) indexKey(machine string) string {
	return s.prefix + "index:" + url.QueryEscape(machine)
}

// Save persists the verdict to Redis.
func (s *Store) Save(ctx context.Context, v *domain.Verdict) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	pipe := s.client.Pipeline()

	// 1. Save JSON with TTL (0 means no expiration)
	pipe.Set(ctx, s.key(v.Machine, v.Input), data, s.ttl)

	// 2. Add to the machine index, scored by expiry
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(v.Machine), backend.Z{
		Score:  score,
		Member: v.Input,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the verdict from Redis.
func (s *Store) Load(ctx context.Context, machine, input string) (*domain.Verdict, error) {
	val, err := s.client.Get(ctx, s.key(machine, input)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrVerdictNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var v domain.Verdict
	if err := json.Unmarshal([]byte(val), &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}
	return &v, nil
}

// Delete removes the verdict and its index entry.
func (s *Store) Delete(ctx context.Context, machine, input string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(machine, input))
	pipe.ZRem(ctx, s.indexKey(machine), input)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the inputs with a live verdict, pruning expired index entries first.
func (s *Store) List(ctx context.Context, machine string) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(machine), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired verdicts: %w", err)
	}

	inputs, err := s.client.ZRange(ctx, s.indexKey(machine), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list verdicts: %w", err)
	}
	return inputs, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
