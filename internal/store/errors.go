package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an id that is not (or no longer) in the collection.
	// Callers treat it as a stale selection, not as a crash.
	ErrNotFound = errors.New("server not found")

	// ErrDuplicateID reports an Add with an id already in use. It can only happen when a caller
	// bypasses NextID, so it is an invariant violation.
	ErrDuplicateID = errors.New("duplicate server id")

	// ErrInvalidReorder reports a reorder payload that is not a permutation of the current ids.
	ErrInvalidReorder = errors.New("invalid reorder")

	// ErrInvalidEntry reports an entry missing required fields.
	ErrInvalidEntry = errors.New("invalid server entry")
)

type notFoundError struct {
	id string
}

func (e notFoundError) Error() string { return fmt.Sprintf("%s: %s", ErrNotFound, e.id) }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

func errNotFound(id string) error { return notFoundError{id: id} }

type duplicateIDError struct {
	id string
}

func (e duplicateIDError) Error() string { return fmt.Sprintf("%s: %s", ErrDuplicateID, e.id) }

func (e duplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

type reorderError struct {
	reason string
}

func (e reorderError) Error() string { return fmt.Sprintf("%s: %s", ErrInvalidReorder, e.reason) }

func (e reorderError) Is(target error) bool { return target == ErrInvalidReorder }
