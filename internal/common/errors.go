// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors (bad input; never retried automatically).
	ErrorValidation = errors.New("validation error")

	// ErrorStorage marks I/O failures against the blob store. Retryable by
	// the caller, never silently swallowed.
	ErrorStorage = errors.New("storage error")

	// ErrorDispatch marks notification delivery failures. Retried by the
	// next scheduler sweep, never surfaced to a user synchronously.
	ErrorDispatch = errors.New("dispatch error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
