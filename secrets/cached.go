package secrets

import (
	"context"
	"log/slog"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/cache"
)

// CachedProvider serves payloads from a cache pool and falls back to the
// next provider on a miss. Successful fetches are stored with the configured
// TTL; failures are returned untouched and never stored.
//
// A TTL of zero or less disables caching: the pool is never consulted and
// every call reaches the next provider.
type CachedProvider struct {
	next   Provider
	pool   cache.Pool
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider wraps next with a cache.
func NewCachedProvider(next Provider, pool cache.Pool, ttl time.Duration, opts ...Option) *CachedProvider {
	o := newStageOptions(opts)
	return &CachedProvider{
		next:   next,
		pool:   pool,
		ttl:    ttl,
		logger: o.logger,
	}
}

// Cached returns a Decorator that applies NewCachedProvider.
func Cached(pool cache.Pool, ttl time.Duration, opts ...Option) Decorator {
	return func(next Provider) Provider {
		return NewCachedProvider(next, pool, ttl, opts...)
	}
}

// Enabled reports whether the provider uses its pool.
func (p *CachedProvider) Enabled() bool {
	return p.pool != nil && p.ttl > 0
}

// Resolve returns the cached payload for id or fetches it.
func (p *CachedProvider) Resolve(ctx context.Context, id string) (string, error) {
	if !p.Enabled() {
		return p.next.Resolve(ctx, id)
	}

	value, ok, err := p.pool.Get(ctx, id)
	switch {
	case err != nil:
		p.logger.WarnContext(ctx, "cache read failed, fetching secret",
			"secret_name", id,
			"error", err)
	case ok:
		p.logger.DebugContext(ctx, "cache hit", "secret_name", id)
		return value, nil
	}

	value, err = p.next.Resolve(ctx, id)
	if err != nil {
		return "", err
	}

	if err := p.pool.Set(ctx, id, value, p.ttl); err != nil {
		p.logger.WarnContext(ctx, "cache write failed",
			"secret_name", id,
			"error", err)
	} else {
		p.logger.DebugContext(ctx, "secret cached",
			"secret_name", id,
			"ttl", p.ttl)
	}

	return value, nil
}

// Invalidate drops the cached payload for id.
func (p *CachedProvider) Invalidate(ctx context.Context, id string) error {
	if !p.Enabled() {
		return nil
	}
	return p.pool.Delete(ctx, id)
}
