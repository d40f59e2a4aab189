package entities

import "errors"

var (
	// ErrNotFound is returned by every store when no record matches the identifier.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is wrapped around the driver error when a unique index rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)
