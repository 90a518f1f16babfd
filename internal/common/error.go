// Package common defines shared constants and sentinel errors used across
// the server layers of TokenKeeper. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential exchange errors. An inactive account is reported to the
	// client exactly like a bad password, so it wraps ErrInvalidCredentials.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = fmt.Errorf("account is inactive: %w", ErrInvalidCredentials)

	// Principal management errors.
	ErrUserExists = errors.New("user already exists")

	// Bearer token errors.
	ErrMissingCredentials = errors.New("authentication credentials were not provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)
