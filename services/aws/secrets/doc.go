// Package secrets provides a read-only, testable client for AWS Secrets Manager
// used as the fetch stage of the environment-variable secret pipeline.
//
// The client wraps the AWS SDK v2 `secretsmanager` service to provide:
//   - A single fetch operation, GetSecret, returning the raw payload
//   - Construction from a passthrough Config (region, endpoint, profile,
//     static credentials, retry attempts, HTTP timeout)
//   - Retries by the SDK standard retryer, sized by Config.MaxAttempts or
//     replaced with WithRetryer
//   - Typed errors (`ErrSecretNotFound`, `ErrAccessDenied`, `ErrSecretEmpty`,
//     `ErrTransient`) so callers can apply policy with errors.Is
//
// The client performs no caching and no retry loop of its own; caching is the
// job of the resolver chain and retries belong to the SDK.
//
// Security considerations
//
//   - The package never logs secret values; only secret names
//   - IAM permissions needed: `secretsmanager:GetSecretValue` and, for secrets
//     encrypted with customer-managed keys, `kms:Decrypt`
//
// # Thread safety
//
// All exported client methods are safe for concurrent use by multiple goroutines.
// The underlying AWS SDK v2 client is thread-safe and its retryer is safe for concurrent use.
package secrets
