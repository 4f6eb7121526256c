package envvar

import (
	"fmt"

	ferrors "github.com/input-output-hk/catalyst-forge-libs/awssecrets/errors"
)

// ConfigurationError reports a reference that could not be resolved and is
// not ignored. Hosts treat it as fatal at startup.
type ConfigurationError struct {
	Name string // The reference as given to the processor
	Err  error  // The underlying resolution error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("cannot resolve environment variable %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for error chain traversal.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Code implements errors.Coder.
func (e *ConfigurationError) Code() ferrors.ErrorCode {
	return ferrors.CodeInvalidConfig
}
