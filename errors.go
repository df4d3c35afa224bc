package pastemyst

import (
	"errors"
	"fmt"
)

// ErrorCode represents the kind of failure an operation hit.
type ErrorCode int

const (
	// ErrUnknown is an unknown error.
	ErrUnknown ErrorCode = iota
	// ErrUnauthorized is returned when the request needs a valid auth token
	// the caller did not supply, or the token does not own the resource.
	ErrUnauthorized
	// ErrNotFound is returned when the paste or user does not exist, or a
	// private paste is not visible to the caller.
	ErrNotFound
	// ErrValidation is returned when the request payload is rejected,
	// either by the client's pre-flight checks or by the server.
	ErrValidation
	// ErrDecode is returned when a response body does not match the
	// expected shape. Fields are never silently defaulted.
	ErrDecode
	// ErrTransport is returned for network failures and server-side (5xx)
	// errors. The client never retries; the underlying cause is wrapped.
	ErrTransport
)

// Error represents an error from a PasteMyst API operation.
type Error struct {
	Code    ErrorCode
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pastemyst: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("pastemyst: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsUnauthorized returns true if the error indicates a missing or
// insufficient auth token.
func IsUnauthorized(err error) bool {
	return hasCode(err, ErrUnauthorized)
}

// IsNotFound returns true if the error indicates the resource doesn't exist
// or isn't visible to the caller.
func IsNotFound(err error) bool {
	return hasCode(err, ErrNotFound)
}

// IsValidation returns true if the error indicates a rejected payload.
func IsValidation(err error) bool {
	return hasCode(err, ErrValidation)
}

// IsDecode returns true if the error indicates a response that didn't match
// the expected schema.
func IsDecode(err error) bool {
	return hasCode(err, ErrDecode)
}

// IsTransport returns true if the error indicates a network or server-side
// failure.
func IsTransport(err error) bool {
	return hasCode(err, ErrTransport)
}
