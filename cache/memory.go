package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryEntry represents a single cached item with expiration time.
type memoryEntry struct {
	value      string
	expiration time.Time
}

// expired reports whether the entry has expired at now. A zero expiration
// never expires.
func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiration.IsZero() && !now.Before(e.expiration)
}

// defaultCleanupInterval is how often go-cache purges expired items.
const defaultCleanupInterval = 5 * time.Minute

// MemoryPool is a thread-safe in-process Pool backed by go-cache.
//
// go-cache expires items on the wall clock; each entry also records its
// expiry on the pool's clock, which decides visibility on reads.
type MemoryPool struct {
	items *gocache.Cache
	now   func() time.Time
}

// MemoryOption configures a MemoryPool.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	cleanupInterval time.Duration
	now             func() time.Time
}

// WithCleanupInterval sets how often expired entries are purged from memory.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithClock replaces time.Now when deciding whether an entry is expired.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewMemoryPool creates an empty in-memory pool.
func NewMemoryPool(opts ...MemoryOption) *MemoryPool {
	o := &memoryOptions{
		cleanupInterval: defaultCleanupInterval,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &MemoryPool{
		items: gocache.New(gocache.NoExpiration, o.cleanupInterval),
		now:   o.now,
	}
}

// Get implements Pool. Expired entries are removed on access.
func (p *MemoryPool) Get(_ context.Context, key string) (string, bool, error) {
	item, ok := p.items.Get(key)
	if !ok {
		return "", false, nil
	}
	entry, ok := item.(memoryEntry)
	if !ok || entry.expired(p.now()) {
		p.items.Delete(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set implements Pool. A ttl <= 0 stores the entry without expiry.
func (p *MemoryPool) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	expiry := gocache.NoExpiration
	if ttl > 0 {
		entry.expiration = p.now().Add(ttl)
		expiry = ttl
	}
	p.items.Set(key, entry, expiry)
	return nil
}

// Has implements Pool.
func (p *MemoryPool) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := p.Get(ctx, key)
	return ok, err
}

// Delete implements Pool.
func (p *MemoryPool) Delete(_ context.Context, key string) error {
	p.items.Delete(key)
	return nil
}

// Clear implements Pool.
func (p *MemoryPool) Clear(_ context.Context) error {
	p.items.Flush()
	return nil
}

// Len returns the number of unexpired entries.
func (p *MemoryPool) Len() int {
	now := p.now()
	n := 0
	for key, item := range p.items.Items() {
		entry, ok := item.Object.(memoryEntry)
		if !ok || entry.expired(now) {
			p.items.Delete(key)
			continue
		}
		n++
	}
	return n
}
