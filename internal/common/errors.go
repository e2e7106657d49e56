// Package common defines shared constants and sentinel errors used across
// client and server layers of itemkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Login errors. Unknown account and wrong password are the same error.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors, all of them an authentication failure for the caller.
	ErrMissingToken   = errors.New("missing token")
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("bad token signature")
	ErrTokenExpired   = errors.New("token expired")

	// Ownership errors.
	ErrNotAuthorized = errors.New("not authorized")
)

// IsAuthFailure reports whether err is one of the token failures that are
// surfaced to callers as a single authentication-failure class.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrTokenExpired)
}
