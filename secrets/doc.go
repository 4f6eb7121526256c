// Package secrets implements the resolution pipeline that turns a secret
// reference into a value.
//
// Every stage implements Provider, a single-method capability:
//
//	Resolve(ctx, id) (string, error)
//
// Stages are decorators composed explicitly at startup, leaf first:
//
//	fetch := aws.New(client)                                // raw payload from the store
//	cached := secrets.NewCachedProvider(fetch, pool, ttl)   // TTL cache by identifier
//	structured := secrets.NewStructuredProvider(cached, ",") // "id,key" extraction
//
// # Error Handling
//
//	if errors.Is(err, secrets.ErrKeyNotFound) {
//		// the JSON payload has no such key
//	}
//	if secrets.IsValidationError(err) {
//		// malformed reference
//	}
//	if secrets.IsProviderError(err) {
//		// the secret store failed; errors.Is works on the store's own errors
//	}
package secrets
