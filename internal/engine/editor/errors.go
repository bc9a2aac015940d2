package editor

import (
	"errors"
	"fmt"
)

// Errors returned by the editor.
var (
	// ErrUnknownTransaction indicates a transaction type the editor does not handle.
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrNegativeCount indicates a movement with a negative grapheme count.
	ErrNegativeCount = errors.New("grapheme count must not be negative")

	// ErrUnknownNormalization indicates an unrecognized normalization form name.
	ErrUnknownNormalization = errors.New("unknown normalization form")
)

// Error is a structural failure while applying a transaction.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("editor: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
