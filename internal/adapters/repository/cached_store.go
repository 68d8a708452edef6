package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/log"
)

var _ domain.KeyValueStore = (*CachedStore)(nil)

// CachedStore reads through Redis in front of a durable store. Writes go to
// the durable store first and then drop the cached copies.
type CachedStore struct {
	next   domain.KeyValueStore
	cache  *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedStore(next domain.KeyValueStore, cache *redis.Client, ttl time.Duration, logger *log.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &CachedStore{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.WithComponent(log.ComponentCache),
	}
}

func (s *CachedStore) cacheKey(key string) string {
	return "kv:" + key
}

func (s *CachedStore) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	cached := make([]string, len(keys))
	for i, k := range keys {
		cached[i] = s.cacheKey(k)
	}
	if err := s.cache.Del(ctx, cached...).Err(); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", log.FieldError, err, log.FieldEntries, len(keys))
	}
}

func (s *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	ck := s.cacheKey(key)

	val, err := s.cache.Get(ctx, ck).Bytes()
	if err == nil {
		return val, nil
	} else if !errors.Is(err, redis.Nil) {
		s.logger.WarnContext(ctx, "redis read error", log.FieldKey, key, log.FieldError, err)
	}

	val, err = s.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, ck, val, s.ttl).Err(); setErr != nil {
		s.logger.WarnContext(ctx, "redis set error", log.FieldKey, key, log.FieldError, setErr)
	}
	return val, nil
}

func (s *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.next.Set(ctx, key, value); err != nil {
		return err
	}
	s.invalidate(ctx, key)
	return nil
}

func (s *CachedStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := s.next.SetMany(ctx, entries); err != nil {
		return err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	s.invalidate(ctx, keys...)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, keys ...string) error {
	if err := s.next.Delete(ctx, keys...); err != nil {
		return err
	}
	s.invalidate(ctx, keys...)
	return nil
}

func (s *CachedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.next.Keys(ctx, prefix)
}

func (s *CachedStore) Clear(ctx context.Context, prefix string) error {
	keys, err := s.next.Keys(ctx, prefix)
	if err != nil {
		return err
	}
	if err := s.next.Clear(ctx, prefix); err != nil {
		return err
	}
	s.invalidate(ctx, keys...)
	return nil
}
