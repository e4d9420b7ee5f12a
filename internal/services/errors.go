// internal/services/errors.go
package services

import "errors"

// Sentinel errors returned by services. Handlers map these onto HTTP status
// codes; anything else is treated as an internal error.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalid         = errors.New("invalid input")
	ErrConflict        = errors.New("resource conflict")
	ErrForbidden       = errors.New("operation not allowed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrUpstream        = errors.New("upstream service unavailable")
)
