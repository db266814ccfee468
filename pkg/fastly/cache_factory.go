package fastly

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/fastly/internal/constants"
)

// CacheType selects a GET response cache backend.
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeNATS   CacheType = "nats"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeNone   CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrRedisConfigRequired  = errors.New("redis configuration required for redis cache")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrCacheDisabled        = errors.New("cache disabled")
)

// CacheConfig describes the cache handed to Config.Cache.
//
// For the shared backends (NATS and Redis) a non-nil Memory puts a
// process-local tier in front of the shared one.
type CacheConfig struct {
	Type    CacheType
	Memory  *MemoryCacheConfig
	NATS    *NATSKVConfig
	Redis   *RedisCacheConfig
	Options *CacheOptions
}

// MemoryCacheConfig bounds the in-process cache by entry count.
type MemoryCacheConfig struct {
	MaxSize int
}

// NewCacheFromConfig creates the cache described by config. A nil config
// yields a memory cache of the default size.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = &CacheConfig{Type: CacheTypeMemory}
	}

	options := config.Options
	if options == nil {
		options = DefaultCacheOptions()
	}

	var shared Cache

	switch config.Type {
	case CacheTypeMemory:
		return newMemoryTier(config.Memory), nil

	case CacheTypeNone:
		return NewNoOpCache(), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		natsConfig := *config.NATS
		if natsConfig.TTL == 0 {
			natsConfig.TTL = options.TTL
		}

		cache, err := NewNATSKVCache(&natsConfig)
		if err != nil {
			return nil, err
		}

		shared = cache

	case CacheTypeRedis:
		if config.Redis == nil {
			return nil, ErrRedisConfigRequired
		}

		redisConfig := *config.Redis
		if redisConfig.KeyPrefix == "" {
			redisConfig.KeyPrefix = options.KeyPrefix
		}

		cache, err := NewRedisCache(&redisConfig)
		if err != nil {
			return nil, err
		}

		shared = cache

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}

	if config.Memory == nil {
		return shared, nil
	}

	return NewCacheChain(newMemoryTier(config.Memory), shared), nil
}

func newMemoryTier(config *MemoryCacheConfig) *MemoryCache {
	if config == nil {
		return NewMemoryCache(constants.DefaultCacheSize)
	}

	return NewMemoryCache(config.MaxSize)
}

// NoOpCache never stores anything. Every Get misses with ErrCacheDisabled.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// CacheChain layers caches fastest first. A hit in a later tier is copied
// into every earlier tier; writes and invalidations go to all tiers.
type CacheChain struct {
	tiers []Cache
}

// NewCacheChain creates a chain over tiers, fastest first.
func NewCacheChain(tiers ...Cache) *CacheChain {
	return &CacheChain{tiers: tiers}
}

func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, tier := range c.tiers {
		entry, err := tier.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, faster := range c.tiers[:i] {
			_ = faster.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
}

func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(tier Cache) error { return tier.Set(ctx, key, entry) })
}

func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(tier Cache) error { return tier.Delete(ctx, key) })
}

func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(tier Cache) error { return tier.Clear(ctx) })
}

func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, tier := range c.tiers {
		if tier.Has(ctx, key) {
			return true
		}
	}

	return false
}

// each applies fn to every tier and joins the failures.
func (c *CacheChain) each(fn func(Cache) error) error {
	errs := make([]error, 0, len(c.tiers))

	for _, tier := range c.tiers {
		err := fn(tier)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
