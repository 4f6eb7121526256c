// Package memory provides an in-memory secret provider for testing and development.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
)

// ProviderName identifies this provider in errors.
const ProviderName = "memory"

// ErrNotFound is returned for identifiers that were never stored.
var ErrNotFound = ferrors.New(ferrors.CodeNotFound, "secret not found")

// Provider implements an in-memory secret store.
// It provides thread-safe access to payloads stored in memory with no persistence.
type Provider struct {
	// store holds payloads keyed by identifier
	store map[string]string
	// mu protects concurrent access to the store
	mu sync.RWMutex
}

// New creates a provider seeded with a copy of initial.
func New(initial map[string]string) *Provider {
	store := make(map[string]string, len(initial))
	maps.Copy(store, initial)
	return &Provider{store: store}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return ProviderName
}

// Resolve returns the payload stored under id.
func (p *Provider) Resolve(ctx context.Context, id string) (string, error) {
	select {
	case <-ctx.Done():
		return "", secrets.NewProviderError(ProviderName, id,
			fmt.Errorf("resolve operation cancelled: %w", ctx.Err()))
	default:
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.store[id]
	if !ok {
		return "", secrets.NewProviderError(ProviderName, id, ErrNotFound)
	}
	return value, nil
}

// Set stores value under id, replacing any previous payload.
func (p *Provider) Set(id, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store[id] = value
}

// Delete removes id.
func (p *Provider) Delete(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.store, id)
}
