package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/faqdex/internal/db"
	"github.com/kailas-cloud/faqdex/internal/domain"
	domdoc "github.com/kailas-cloud/faqdex/internal/domain/document"
)

// DefaultRedisKey holds the JSON document array when no key is configured.
const DefaultRedisKey = "faqdex:documents"

// kvStore is the consumer interface for the Redis source (ISP).
type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisSource reads the JSON document array stored at a single key.
type RedisSource struct {
	store kvStore
	key   string
}

// NewRedis creates a Redis-backed source. Empty key means DefaultRedisKey.
func NewRedis(s kvStore, key string) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSource{store: s, key: key}
}

// Key returns the Redis key holding the documents.
func (s *RedisSource) Key() string { return s.key }

// Load fetches and parses the documents.
func (s *RedisSource) Load(ctx context.Context) (domdoc.Set, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domdoc.Set{}, domain.NewSourceError(SourceRedis, fmt.Errorf("key %q: %w", s.key, err))
		}
		return domdoc.Set{}, domain.NewSourceError(SourceRedis, fmt.Errorf("get %q: %w", s.key, err))
	}

	set, err := Parse(data)
	if err != nil {
		return domdoc.Set{}, domain.NewSourceError(SourceRedis, fmt.Errorf("parse %q: %w", s.key, err))
	}
	return set, nil
}

// Seed stores set at the source key, replacing any previous value.
func (s *RedisSource) Seed(ctx context.Context, set domdoc.Set) error {
	data, err := Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("set %q: %w", s.key, err)
	}
	return nil
}
