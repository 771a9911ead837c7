package lms

import "errors"

// Error kinds recognized at the API boundary. Everything else that escapes
// a handler is reported as an internal error.
var (
	// ErrBadRequest marks a missing or empty required parameter.
	ErrBadRequest = errors.New("invalid request")

	// ErrNotFound marks an identifier that does not resolve to a known
	// entity.
	ErrNotFound = errors.New("not found")

	// ErrMissingDependency marks an absent host collaborator. This is a
	// deployment error, not a transient one.
	ErrMissingDependency = errors.New("missing dependency")
)
