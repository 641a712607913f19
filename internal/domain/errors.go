// Package domain holds the entities and sentinel errors shared across the
// application layers.
package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP
// statuses at the edge.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
	ErrEstimateNotReady   = errors.New("order is not complete enough to generate an estimate")
)
