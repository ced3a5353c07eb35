package errors

import (
	"errors"
	"fmt"
)

// Common error types for the identity-provider client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired, login required")
	ErrNoRefreshToken   = errors.New("no refresh token available")

	// Transport errors
	ErrNetwork        = errors.New("network error")
	ErrRequestTimeout = errors.New("request timed out")
	ErrUnauthorized   = errors.New("unauthorized")

	// Form errors
	ErrValidationFailed   = errors.New("validation failed")
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// View errors
	ErrUnknownView   = errors.New("unknown view")
	ErrViewForbidden = errors.New("view requires a role the user does not have")

	// Storage errors
	ErrKeyNotFound = errors.New("key not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
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

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
