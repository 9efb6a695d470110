// Package apperr defines the sentinel errors shared by services and the
// HTTP boundary. Services wrap these with %w and context; the boundary
// maps them to status codes with errors.Is. Store failures are not part
// of the taxonomy and pass through unwrapped.
package apperr

import "errors"

var (
	// ErrInvalidArgument marks bad or missing input, such as an empty
	// password or a malformed payload.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict marks a write that would collide with existing state,
	// such as registering an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks an operation against an identifier that does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized marks failed credential or token verification.
	ErrUnauthorized = errors.New("unauthorized")
)
