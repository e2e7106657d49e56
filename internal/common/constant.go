package common

import "time"

const (
	// TokenHeaderName is the HTTP header carrying the access token when the
	// header transport is selected.
	TokenHeaderName = "x-auth-token"

	// TokenCookieName is the cookie carrying the access token when the cookie
	// transport is selected.
	TokenCookieName = "token"

	// DefaultTokenValidity is the lifetime of an issued access token unless
	// configured otherwise.
	DefaultTokenValidity = 24 * time.Hour
)
