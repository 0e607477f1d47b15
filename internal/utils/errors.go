package utils

import (
	"errors"
	"fmt"
)

// RequestError is returned when the gallery service answers with a non-success status.
type RequestError struct {
	Code    int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// New returns a RequestError for the given status code and message.
func New(code int, message string) error {
	return &RequestError{
		Code:    code,
		Message: message,
	}
}

// ValidationError reports input rejected before any network call, or a
// response body whose shape does not match what the client expects.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// Invalid returns a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NetworkError wraps a transport-level failure (dial, TLS, reset, cancelled).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNetwork reports whether err is or wraps a NetworkError.
func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}

// AsRequest extracts the RequestError from err, if any.
func AsRequest(err error) (*RequestError, bool) {
	var r *RequestError
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
