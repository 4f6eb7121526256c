package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of redis.UniversalClient used by RedisPool.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// RedisOptions configures the redis connection built by NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient opens a go-redis universal client. The connection is
// established lazily on the first command.
//
//nolint:ireturn // go-redis exposes the universal client as an interface
func NewRedisClient(opts RedisOptions) redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{opts.Addr},
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// RedisPool stores entries as plain redis strings under "<namespace>:<key>"
// and lets redis expire them.
type RedisPool struct {
	client    RedisClient
	namespace string
	scanCount int64
}

// NewRedisPool creates a pool on client. Keys are prefixed with namespace.
func NewRedisPool(client RedisClient, namespace string) (*RedisPool, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &RedisPool{
		client:    client,
		namespace: namespace,
		scanCount: 100,
	}, nil
}

func (p *RedisPool) key(key string) string {
	return p.namespace + ":" + key
}

// Get implements Pool.
func (p *RedisPool) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := p.client.Get(ctx, p.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache: redis get: %w", err)
	}
	return value, true, nil
}

// Set implements Pool. A ttl <= 0 stores the key without expiry.
func (p *RedisPool) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := p.client.Set(ctx, p.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

// Has implements Pool.
func (p *RedisPool) Has(ctx context.Context, key string) (bool, error) {
	n, err := p.client.Exists(ctx, p.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("cache: redis exists: %w", err)
	}
	return n > 0, nil
}

// Delete implements Pool.
func (p *RedisPool) Delete(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, p.key(key)).Err(); err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

// globEscaper quotes the characters redis treats as glob syntax in a SCAN
// MATCH pattern.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

// Clear implements Pool. It scans the namespace and deletes matching keys
// batch by batch; keys written concurrently may survive.
func (p *RedisPool) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := p.client.Scan(ctx, cursor, globEscaper.Replace(p.namespace)+":*", p.scanCount).Result()
		if err != nil {
			return fmt.Errorf("cache: redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := p.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache: redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
