package secrets

import "context"

// Provider resolves an identifier to a secret payload.
// Implementations must be safe for concurrent use.
type Provider interface {
	Resolve(ctx context.Context, id string) (string, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, id string) (string, error)

// Resolve calls f(ctx, id).
func (f ProviderFunc) Resolve(ctx context.Context, id string) (string, error) {
	return f(ctx, id)
}

// Decorator wraps a Provider with an additional stage.
type Decorator func(Provider) Provider

// Chain applies decorators to base in order, so the last decorator is the
// outermost stage.
//
//nolint:ireturn // stages are only known by their capability
func Chain(base Provider, decorators ...Decorator) Provider {
	p := base
	for _, d := range decorators {
		p = d(p)
	}
	return p
}
