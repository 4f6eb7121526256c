// Package cache provides the key/value pools that back the secret resolver
// cache. Every pool stores string payloads under string keys with a
// time-to-live; a ttl <= 0 stores the entry without expiry.
//
// Three backends are available:
//   - memory: a process-local map (alias "array")
//   - filesystem: one file per key on a go-billy filesystem
//   - redis: a shared redis server, via go-redis
//
// Pools never interpret payloads and never log them.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Pool stores values by key with a time-to-live.
// Implementations must be safe for concurrent use.
type Pool interface {
	// Get returns the value stored under key and true, or false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous entry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Has reports whether key holds an unexpired entry.
	Has(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by the pool.
	Clear(ctx context.Context) error
}

// Kind selects a Pool backend.
type Kind string

const (
	KindMemory     Kind = "memory"
	KindFilesystem Kind = "filesystem"
	KindRedis      Kind = "redis"
)

// ParseKind parses a backend selector. "array" is accepted as an alias of
// "memory".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "memory", "array":
		return KindMemory, nil
	case "filesystem":
		return KindFilesystem, nil
	case "redis":
		return KindRedis, nil
	default:
		return "", fmt.Errorf("unknown cache backend %q (want memory, filesystem or redis)", s)
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}
