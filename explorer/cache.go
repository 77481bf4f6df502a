package explorer

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "council:explorer:"

// Cache stores rendered responses. Keys embed the ledger round, so an entry is
// never stale, it just stops being asked for once the next group commits.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

// OpenRedis accepts either a redis:// url or a plain host:port.
func OpenRedis(addr string) (*redis.Client, error) {
	if !strings.Contains(addr, "://") {
		return redis.NewClient(&redis.Options{Addr: addr}), nil
	}
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, errors.Wrap(err, "redis")
	}
	return redis.NewClient(opt), nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	body, err := c.rdb.Get(ctx, cachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, body []byte) error {
	return c.rdb.Set(ctx, cachePrefix+key, body, c.ttl).Err()
}

// MemoryCache keeps responses of the latest round only.
type MemoryCache struct {
	mu      sync.Mutex
	round   string
	entries map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string][]byte{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.entries[key]
	return body, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	round, _, _ := strings.Cut(key, ":")
	if round != c.round {
		c.round = round
		c.entries = map[string][]byte{}
	}
	c.entries[key] = body
	return nil
}

// Len is the number of cached responses.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
