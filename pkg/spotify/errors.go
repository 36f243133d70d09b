package spotify

import (
	"errors"
)

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("spotify: client ID and secret are required")

	// ErrNotAuthenticated is returned when a data call is made before a
	// successful Authenticate. This is a programming error, not a
	// transient condition.
	ErrNotAuthenticated = errors.New("spotify: client not authenticated, call Authenticate first")

	// ErrAuthFailed is returned when the token exchange is rejected or
	// yields no token. Errors from Authenticate wrap it, so callers can
	// test with errors.Is.
	ErrAuthFailed = errors.New("spotify: authentication failed")
)
