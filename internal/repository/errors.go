package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when inserting a row whose identifier
	// already exists
	ErrDuplicateID = errors.New("record with this id already exists")
)
