// Package secrets provides error types and handling for the resolution pipeline.
//
// All errors defined here can be unwrapped using errors.Is() and errors.As().
package secrets

import (
	"errors"
	"fmt"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
)

var (
	// ErrKeyNotFound indicates that a reference names a key that the secret's
	// JSON payload does not contain, or that the payload is not a JSON object.
	ErrKeyNotFound = ferrors.New(ferrors.CodeNotFound, "key not found in secret")

	// ErrInvalidReference indicates a malformed reference, such as an empty
	// identifier or an empty key after the delimiter.
	ErrInvalidReference = ferrors.New(ferrors.CodeInvalidInput, "invalid secret reference")
)

// ProviderError wraps a failure of the secret store with the provider name
// and the identifier being fetched.
type ProviderError struct {
	Provider string // Name of the provider where the error occurred
	ID       string // Identifier that was being resolved
	Err      error  // The underlying error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %q error for secret %q: %v", e.Provider, e.ID, e.Err)
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, id string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		ID:       id,
		Err:      err,
	}
}

// IsProviderError checks if an error is a ProviderError or contains one in its chain.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// ValidationError represents a malformed reference. It unwraps to
// ErrInvalidReference.
type ValidationError struct {
	Field   string // The part of the reference that failed validation
	Value   string // The offending reference, never a secret value
	Message string // Human-readable validation message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"validation failed for field %q: %s (value: %q)",
		e.Field,
		e.Message,
		e.Value,
	)
}

// Unwrap returns ErrInvalidReference.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidReference
}

// NewValidationError creates a new ValidationError for reference validation failures.
func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// IsValidationError checks if an error is a ValidationError or contains one in its chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
