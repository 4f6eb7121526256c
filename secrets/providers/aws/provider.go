// Package aws exposes an AWS Secrets Manager client as a secrets.Provider.
//
// The provider is the leaf of the resolution pipeline: it fetches the raw
// payload of a secret and never caches or interprets it.
//
//	client, err := awssecrets.NewClient(ctx, awssecrets.Config{Region: "eu-west-1"})
//	if err != nil {
//	    return err
//	}
//	provider := aws.New(client)
//
// Failures are wrapped in *secrets.ProviderError; the client's errors remain
// reachable with errors.Is:
//
//	_, err := provider.Resolve(ctx, "missing-secret")
//	if errors.Is(err, awssecrets.ErrSecretNotFound) {
//	    // handle missing secret
//	}
package aws

import (
	"context"

	"github.com/input-output-hk/catalyst-forge-libs/awssecrets/secrets"
)

// ProviderName identifies this provider in errors.
const ProviderName = "aws"

// SecretGetter fetches a raw secret payload by name.
// *awssecrets.Client satisfies it.
type SecretGetter interface {
	GetSecret(ctx context.Context, secretName string) (string, error)
}

// Provider adapts a SecretGetter to secrets.Provider.
// Provider is safe for concurrent use when its getter is.
type Provider struct {
	client SecretGetter
}

// New creates a provider backed by client.
func New(client SecretGetter) *Provider {
	return &Provider{client: client}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return ProviderName
}

// Resolve fetches the payload of the secret named id.
func (p *Provider) Resolve(ctx context.Context, id string) (string, error) {
	value, err := p.client.GetSecret(ctx, id)
	if err != nil {
		return "", secrets.NewProviderError(ProviderName, id, err)
	}
	return value, nil
}
