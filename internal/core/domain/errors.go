package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Every validation error below wraps it so callers can match on it alone.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown document type or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// Request validation errors.

	// ErrEmptyText indicates the extracted text is empty or whitespace only.
	ErrEmptyText = fmt.Errorf("%w: extracted text is empty", ErrInvalidInput)

	// ErrMissingUserID indicates the caller did not supply a user identifier.
	ErrMissingUserID = fmt.Errorf("%w: user id is required", ErrInvalidInput)

	// ErrMissingProjectID indicates the caller did not supply a project identifier.
	ErrMissingProjectID = fmt.Errorf("%w: project id is required", ErrInvalidInput)

	// ErrInvalidChunkSize indicates a non-positive target chunk size.
	ErrInvalidChunkSize = fmt.Errorf("%w: target chunk size must be positive", ErrInvalidInput)

	// ErrInvalidOverlap indicates a negative overlap or one not smaller than the target.
	ErrInvalidOverlap = fmt.Errorf("%w: overlap must be non-negative and smaller than the target chunk size", ErrInvalidInput)

	// ErrHistoryDisabled indicates the run journal is not configured.
	ErrHistoryDisabled = errors.New("run history disabled")
)
