package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown source or processor type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMalformedDocument indicates a document whose structure cannot be split.
	// Callers fall back to plain size-based splitting.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrContentTooShort indicates a forum post too short to be useful.
	// The post is skipped, not counted as a failure.
	ErrContentTooShort = errors.New("content too short")
)
