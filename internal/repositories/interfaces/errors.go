package interfaces

import "errors"

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrConditionFailed is returned when a conditional write matched no
	// document because the expected prior state no longer holds.
	ErrConditionFailed = errors.New("write condition not met")
)
