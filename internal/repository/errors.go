package repository

import "errors"

var (
	// ErrNotFound covers both a missing document and a document owned by
	// someone else. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is surfaced when a unique index rejects an insert.
	ErrDuplicate = errors.New("duplicate document")
)
