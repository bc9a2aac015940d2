package engine

import "errors"

// Errors returned by document operations.
var (
	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrNilTransaction indicates Apply was called without a transaction.
	ErrNilTransaction = errors.New("nil transaction")
)
