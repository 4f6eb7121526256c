package errors

import (
	stderrors "errors"
)

// Coder is implemented by errors that carry an ErrorCode.
type Coder interface {
	Code() ErrorCode
}

// Error is a sentinel error with an attached code. Values are compared by
// identity, so errors.Is works on wrapped chains.
type Error struct {
	code    ErrorCode
	message string
}

// New creates a coded sentinel error.
func New(code ErrorCode, message string) *Error {
	return &Error{code: code, message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.message
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// CodeOf returns the code of the outermost Coder in err's chain.
// A nil error has no code and returns the empty string.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var c Coder
	if stderrors.As(err, &c) {
		return c.Code()
	}
	return CodeUnknown
}
