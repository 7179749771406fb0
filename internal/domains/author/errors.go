package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	// ErrInvalidCredentials is deliberately undifferentiated: unknown email
	// and wrong password surface identically so callers cannot probe which
	// emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidToken = errors.New("invalid or expired token")
)
