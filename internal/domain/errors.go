package domain

import "errors"

// Error kinds surfaced by the lifecycle core. Callers map these to
// transport-level responses; none of them are retried by the core.
var (
	// ErrValidation marks rejected input, e.g. a title that normalizes
	// to an empty slug.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks an ownership or role guard violation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound marks an operation targeting a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks an exhausted retry budget on the slug
	// uniqueness race.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")
)
