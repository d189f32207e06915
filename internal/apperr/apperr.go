// Package apperr defines the error categories surfaced at the API boundary.
// Handlers map them to HTTP status codes with errors.Is; everything else is
// treated as an internal failure.
package apperr

import "errors"

var (
	// ErrValidation marks a request missing required fields.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a reference to a nonexistent booth.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a bad or missing shared ingestion key.
	ErrUnauthorized = errors.New("unauthorized")
)
