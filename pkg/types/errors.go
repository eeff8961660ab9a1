package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// ErrNotFound reports that a referenced entity does not exist. It is
// distinct from storage failures: callers may map it to a 404 while
// retrying storage errors.
var ErrNotFound = errors.New("entity not found")
