package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures for callers that map them to transport
// codes.
type Kind int

// Failure kinds.
const (
	// KindNotFound means a referenced entity is absent.
	KindNotFound Kind = iota + 1
	// KindValidation means the input was malformed or out of range.
	KindValidation
	// KindConflict means a business rule rejected the operation.
	KindConflict
	// KindConfiguration means reference data is misconfigured.
	KindConfiguration
	// KindInternal means the atomic unit failed unexpectedly.
	KindInternal
)

// Error is a classified engine failure with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation builds a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict builds a KindConflict error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Configuration builds a KindConfiguration error.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the failure kind, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the user-facing message, with a generic fallback for
// unclassified errors so internal detail never leaks to callers.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
