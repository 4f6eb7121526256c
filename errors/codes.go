// Package errors provides the error codes shared by the secret resolution
// pipeline. Codes are string-based for debuggability and stable CLI exit
// status mapping.
package errors

// ErrorCode represents a specific failure class of a secret resolution.
type ErrorCode string

const (
	// Resource errors.

	// CodeNotFound indicates the secret, or a key inside it, does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Permission errors.

	// CodeForbidden indicates the caller lacks permission to read the secret.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// Validation errors.

	// CodeInvalidInput indicates a malformed secret reference.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error that must abort startup.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Infrastructure errors.

	// CodeUnavailable indicates the secret store failed in a way that may
	// succeed on a later attempt (network, throttling, service errors).
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Generic errors.

	// CodeUnknown indicates an unclassified error.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// ExitCode maps an error code to a process exit status.
func (c ErrorCode) ExitCode() int {
	switch c {
	case CodeInvalidInput, CodeInvalidConfig:
		return 2
	case CodeNotFound:
		return 3
	case CodeForbidden:
		return 4
	default:
		return 1
	}
}
