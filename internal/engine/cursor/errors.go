package cursor

import "errors"

// Errors returned by cursors and selections.
var (
	// ErrStale indicates the buffer changed after the cursor was created.
	ErrStale = errors.New("cursor is stale: buffer was modified")

	// ErrUnknownKind indicates an unrecognized cursor kind.
	ErrUnknownKind = errors.New("unknown cursor kind")
)
