package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// ErrTokenRejected matches a 401 caused by a missing or invalid token.
	// A 401 for an ownership mismatch does not match it.
	ErrTokenRejected = errors.New("token rejected")
)

// MsgNotAuthorized is the server message for a request on an item the caller
// does not own.
const MsgNotAuthorized = "Not authorized"

// APIError is a non-2xx answer from the server. Msg is the server's "msg"
// field when present.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return http.StatusText(e.Status)
}

// Is lets callers match status classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrTokenRejected:
		return e.Status == http.StatusUnauthorized && e.Msg != MsgNotAuthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Message returns the server-provided message of err, or fallback.
func Message(err error, fallback string) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	if errors.Is(err, ErrUnavailable) {
		return "Server unavailable"
	}
	return fallback
}
