package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInactiveAccount occurs when a deactivated account attempts to log in.
	ErrInactiveAccount = errors.New("inactive account")
	// ErrDuplicateEmail occurs when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("duplicate email")
)
