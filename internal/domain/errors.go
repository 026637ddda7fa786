package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation failures that are checked proactively,
// before any write is issued.
var (
	// ErrNotFound is returned when a referenced document id is absent
	// at mutation time.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a non-deleted sibling folder
	// already carries the requested name (case-sensitive exact match).
	ErrDuplicateName = errors.New("a folder with this name already exists at this level")

	// ErrCycle is returned when a folder re-parenting would make the
	// folder its own ancestor.
	ErrCycle = errors.New("operation would create a circular folder structure")

	// ErrValidation is returned for malformed input (missing required
	// field, empty bulk id list, unknown disposition).
	ErrValidation = errors.New("invalid input")
)

// StoreError wraps a failure of the underlying document store
// (network, permission, quota). The original error is kept for
// diagnostics via Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// FetchError wraps a failed metadata retrieval: timeout, non-2xx
// response, DNS or transport error.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
