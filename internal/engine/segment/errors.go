package segment

import (
	"errors"
	"fmt"
)

// Errors returned by segmentation.
var (
	// ErrIncompleteContext indicates the segmenter needs more text before
	// the queried offset than it was allowed to read.
	ErrIncompleteContext = errors.New("incomplete grapheme context")

	// ErrOffsetOutOfRange indicates an offset outside [0, Len].
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// PreContextError reports that no safe restart point was found within the
// segmenter's context window before Offset.
type PreContextError struct {
	Offset int
}

func (e *PreContextError) Error() string {
	return fmt.Sprintf("grapheme segmentation needs context before offset %d", e.Offset)
}

// Unwrap returns ErrIncompleteContext.
func (e *PreContextError) Unwrap() error {
	return ErrIncompleteContext
}
