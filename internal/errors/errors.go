// Package errors defines the sentinel errors shared across the application.
// Services return these (wrapped with context via fmt.Errorf and %w) and the
// API layer maps them to HTTP status codes with errors.Is, keeping business
// logic free of transport concerns.
package errors

import "errors"

var (
	// ErrNotFound signifies that a requested resource could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation. The
	// wrapping error message is safe to show to the caller.
	ErrValidation = errors.New("validation failed")

	// ErrInternal signifies an unexpected server-side failure. Details are
	// logged, never returned to the client.
	ErrInternal = errors.New("internal server error")
)
