// Package secrets provides custom error types for AWS Secrets Manager operations.
//
// # Error Handling Security
//
// - Errors never include secret values, only secret names
// - Use errors.Is() to check for specific error types
// - AWS SDK errors are wrapped with the operation that produced them
package secrets

import (
	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
)

var (
	// ErrSecretNotFound is returned when a requested secret does not exist
	// in AWS Secrets Manager.
	ErrSecretNotFound = ferrors.New(ferrors.CodeNotFound, "secret not found")

	// ErrSecretEmpty is returned when a secret exists but contains neither a
	// string nor a binary value.
	ErrSecretEmpty = ferrors.New(ferrors.CodeNotFound, "secret value is empty")

	// ErrAccessDenied is returned when the AWS credentials may not read the
	// secret, or may not decrypt it with its KMS key.
	ErrAccessDenied = ferrors.New(ferrors.CodeForbidden, "access denied to secret")

	// ErrTransient is returned for every other failure of the secret store:
	// network errors, throttling that exhausted the SDK retryer, service errors
	// and cancelled contexts.
	ErrTransient = ferrors.New(ferrors.CodeUnavailable, "secret store unavailable")
)
