// Package common holds the error taxonomy shared by the store, service and
// handler layers.
package common

import "errors"

var (
	// request errors
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")

	// auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("admin privileges required")

	// repository errors
	ErrNotFound = errors.New("not found")

	// upstream errors
	ErrGateway = errors.New("upstream service error")
)
