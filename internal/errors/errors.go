package errors

import (
	"errors"
	"fmt"
)

// Common error types for the login broker
var (
	// Callback errors
	ErrInvalidState   = errors.New("invalid or expired state parameter")
	ErrExchangeFailed = errors.New("authorization code exchange failed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Cookie errors
	ErrInvalidSessionToken = errors.New("invalid session token")

	// Startup errors
	ErrMissingConfig = errors.New("missing required configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
