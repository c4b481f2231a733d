package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	CacheTypeRedis  = "redis"
	CacheTypeMemory = "memory"
	CacheTypeNoop   = "noop"
)

// Cache stores embeddings by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]float32, bool)
	Set(ctx context.Context, key string, value []float32)
	Name() string
}

type CacheConfig struct {
	Type      string // "redis", "memory", "noop"
	KeyPrefix string
	MaxSize   int
	TTL       time.Duration
}

// ByteStore is the slice of a Redis client the redis cache needs.
type ByteStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error
}

// CacheKey derives the cache key for text embedded by model.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// RedisCache keeps embeddings as little endian float32 blobs.
type RedisCache struct {
	store  ByteStore
	prefix string
	ttl    time.Duration
}

func NewRedisCache(store ByteStore, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{store: store, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Name() string { return CacheTypeRedis }

func (c *RedisCache) Get(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.store.GetBytes(ctx, c.prefix+key)
	if err != nil || len(data)%4 != 0 {
		return nil, false
	}

	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vector, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []float32) {
	data := make([]byte, len(value)*4)
	for i, f := range value {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(f))
	}
	// best effort
	_ = c.store.SetBytes(ctx, c.prefix+key, data, c.ttl)
}

// MemoryCache is an in-process LRU with per entry expiry.
type MemoryCache struct {
	cache *lru.Cache
	ttl   time.Duration
	mu    sync.Mutex
	now   func() time.Time
}

type cacheEntry struct {
	value     []float32
	expiresAt time.Time
}

func NewMemoryCache(maxSize int, ttl time.Duration) (*MemoryCache, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &MemoryCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

func (c *MemoryCache) Name() string { return CacheTypeMemory }

func (c *MemoryCache) Get(_ context.Context, key string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}

	entry := val.(cacheEntry)
	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)})
}

// NoOpsCache disables caching.
type NoOpsCache struct{}

func NewNoOpsCache() *NoOpsCache { return &NoOpsCache{} }

func (c *NoOpsCache) Name() string                                 { return CacheTypeNoop }
func (c *NoOpsCache) Get(context.Context, string) ([]float32, bool) { return nil, false }
func (c *NoOpsCache) Set(context.Context, string, []float32)        {}

// NewCache builds the cache selected by config. store is required for redis.
func NewCache(config CacheConfig, store ByteStore) (Cache, error) {
	switch config.Type {
	case CacheTypeRedis:
		if store == nil {
			return nil, fmt.Errorf("redis cache requires a redis connection")
		}
		return NewRedisCache(store, config.KeyPrefix, config.TTL), nil
	case CacheTypeMemory, "":
		size := config.MaxSize
		if size <= 0 {
			size = 10000
		}
		return NewMemoryCache(size, config.TTL)
	case CacheTypeNoop:
		return NewNoOpsCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", config.Type)
	}
}
