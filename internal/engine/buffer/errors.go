package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset outside [0, Len].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrInvalidRange indicates start > end or end > Len.
	ErrInvalidRange = errors.New("invalid range")

	// ErrNotCodepointBoundary indicates an offset inside a UTF-8 sequence.
	ErrNotCodepointBoundary = errors.New("offset is not a codepoint boundary")

	// ErrNotGraphemeBoundary indicates an edit offset inside a grapheme cluster.
	ErrNotGraphemeBoundary = errors.New("offset is not a grapheme boundary")

	// ErrLineOutOfRange indicates a line number past the end of the text.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrInvalidUTF8 indicates inserted text is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")

	// ErrUnknownBackend indicates an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown buffer backend")
)
