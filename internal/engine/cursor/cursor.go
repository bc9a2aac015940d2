package cursor

import (
	"fmt"
	"strings"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/segment"
)

// Kind identifies the boundary a cursor walks.
type Kind uint8

const (
	Codepoint Kind = iota
	Grapheme
	Word
	Sentence
	Paragraph
	Line
	Block
)

var kindNames = [...]string{"codepoint", "grapheme", "word", "sentence", "paragraph", "line", "block"}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Cursor walks boundaries of one kind. Next and Prev return the new
// offset and true, or the unchanged offset and false at the text edge.
type Cursor interface {
	Offset() int
	Next() (int, bool, error)
	Prev() (int, bool, error)
	Kind() Kind
}

// New creates a cursor of the given kind at off.
func New(kind Kind, buf buffer.TextBuffer, off int) (Cursor, error) {
	switch kind {
	case Codepoint:
		return NewCodepoint(buf, off)
	case Grapheme:
		return NewGrapheme(buf, off)
	case Word:
		c, err := NewWord(buf, off)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Sentence:
		return NewSentence(buf, off)
	case Paragraph:
		return NewParagraph(buf, off)
	case Line:
		return NewLine(buf, off)
	case Block:
		return NewBlock(buf, off)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
}

// stepFunc finds the boundary after or before off.
type stepFunc func(src buffer.TextBuffer, off int) (int, bool, error)

// walker holds the state shared by every cursor kind.
type walker struct {
	buf     buffer.TextBuffer
	off     int
	version uint64
	kind    Kind
	next    stepFunc
	prev    stepFunc
}

func newWalker(kind Kind, buf buffer.TextBuffer, off int, next, prev stepFunc) (*walker, error) {
	if off < 0 || off > buf.Len() {
		return nil, buffer.ErrOffsetOutOfRange
	}
	if !segment.IsCodepointBoundary(buf, off) {
		return nil, buffer.ErrNotCodepointBoundary
	}
	return &walker{
		buf:     buf,
		off:     off,
		version: buf.Version(),
		kind:    kind,
		next:    next,
		prev:    prev,
	}, nil
}

func (w *walker) Offset() int { return w.off }
func (w *walker) Kind() Kind  { return w.kind }

func (w *walker) Next() (int, bool, error) { return w.step(w.next) }
func (w *walker) Prev() (int, bool, error) { return w.step(w.prev) }

func (w *walker) step(fn stepFunc) (int, bool, error) {
	if w.buf.Version() != w.version {
		return w.off, false, ErrStale
	}
	pos, ok, err := fn(w.buf, w.off)
	if err != nil || !ok {
		return w.off, false, err
	}
	w.off = pos
	return pos, true, nil
}

// asCursor keeps a failed constructor from returning a typed nil.
func asCursor(w *walker, err error) (Cursor, error) {
	if err != nil {
		return nil, err
	}
	return w, nil
}

// segmenterOf returns the buffer's segmenter when it exposes one.
func segmenterOf(buf buffer.TextBuffer) segment.Segmenter {
	if s, ok := buf.(interface{ Segmenter() segment.Segmenter }); ok {
		return s.Segmenter()
	}
	return segment.DefaultSegmenter
}

// NewCodepoint creates a cursor over codepoint boundaries.
func NewCodepoint(buf buffer.TextBuffer, off int) (Cursor, error) {
	return asCursor(newWalker(Codepoint, buf, off,
		func(b buffer.TextBuffer, o int) (int, bool, error) { return segment.NextCodepoint(b, o) },
		func(b buffer.TextBuffer, o int) (int, bool, error) { return segment.PrevCodepoint(b, o) },
	))
}

// NewGrapheme creates a cursor over grapheme cluster boundaries.
func NewGrapheme(buf buffer.TextBuffer, off int) (Cursor, error) {
	seg := segmenterOf(buf)
	return asCursor(newWalker(Grapheme, buf, off,
		func(b buffer.TextBuffer, o int) (int, bool, error) { return seg.Next(b, o) },
		func(b buffer.TextBuffer, o int) (int, bool, error) { return seg.Prev(b, o) },
	))
}
