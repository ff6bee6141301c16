package model

import "errors"

// Error taxonomy shared by the backend adapter, the services, and the CLI.
var (
	// ErrTransport covers unreachable backends, malformed responses, and
	// statuses outside the contract.
	ErrTransport = errors.New("backend unavailable")

	// ErrUnauthorized is a 401 from the backend: credential missing, expired, or revoked.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound is a 404 on an item operation.
	ErrNotFound = errors.New("not found")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("rejected by backend")

	// ErrInvalidCredentials is the only failure Login reports.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError is a structured rejection reported by the backend, such as
// a duplicate username. Reason is the backend's message verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
