package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neighborhub/pkg/cache"
	"neighborhub/pkg/logger"
)

var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisClient is the part of cache.RedisCache the cache service uses.
type RedisClient interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type cacheService struct {
	redisClient RedisClient
	logger      *logger.Logger
	defaultTTL  time.Duration
	keyPrefix   string
}

func NewCacheService(redisClient RedisClient, log *logger.Logger, keyPrefix string, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redisClient: redisClient,
		logger:      log,
		defaultTTL:  defaultTTL,
		keyPrefix:   keyPrefix,
	}
}

// Get returns ErrCacheMiss when key is absent.
func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	err := s.redisClient.Get(ctx, s.buildKey(key), dest)
	if err != nil {
		if cache.IsMiss(err) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redisClient.Set(ctx, s.buildKey(key), value, expiration); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	s.logger.WithField("cache_key", key).
		WithField("expiration", expiration).
		Debug("Cache set")

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.buildKey(key)
	}

	if err := s.redisClient.Delete(ctx, fullKeys...); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}

	s.logger.WithField("cache_keys", keys).Debug("Cache keys deleted")
	return nil
}

func (s *cacheService) buildKey(key string) string {
	if s.keyPrefix == "" {
		return key
	}
	return s.keyPrefix + key
}
