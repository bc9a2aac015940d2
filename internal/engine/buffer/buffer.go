package buffer

import (
	"strings"

	"github.com/dshills/bluebook/internal/engine/segment"
)

// TextBuffer is the capability every buffer backend provides.
type TextBuffer interface {
	segment.Source

	// Version increments on every mutation that changes the text.
	Version() uint64

	// String returns the full text.
	String() string

	// Slice returns the text in [start, end).
	Slice(start, end int) (string, error)

	// Write inserts s at off, which must be a grapheme boundary.
	Write(off int, s string) (Delta, error)

	// ReplaceRange atomically replaces [start, end) with s.
	ReplaceRange(start, end int, s string) (Delta, error)

	// RestoreRange replaces [start, end) with s requiring only codepoint
	// boundaries. It replays recorded edits, whose ends may sit inside a
	// cluster the edit itself created.
	RestoreRange(start, end int, s string) (Delta, error)

	// Drain removes [start, end) and returns the removed text.
	Drain(start, end int) (string, Delta, error)

	// LineCount returns the number of lines (line feeds + 1).
	LineCount() int

	// LineOfOffset returns the 0-based line containing off.
	LineOfOffset(off int) (int, error)

	// OffsetOfLine returns the offset of the first byte of line.
	OffsetOfLine(line int) (int, error)

	// OffsetToPosition converts off to a line and UTF-16 column.
	OffsetToPosition(off int) (Position, error)

	// OffsetOfPosition converts a line and UTF-16 column to an offset.
	OffsetOfPosition(p Position) (int, error)
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithSegmenter sets the grapheme segmenter used to validate edits.
func WithSegmenter(seg segment.Segmenter) Option {
	return func(b *Buffer) {
		b.seg = seg
	}
}

// Buffer implements TextBuffer over a Store.
type Buffer struct {
	store   Store
	version uint64
	seg     segment.Segmenter
}

var _ TextBuffer = (*Buffer)(nil)

// New creates a buffer of the given backend holding s. Invalid UTF-8 in
// s is replaced with U+FFFD.
func New(kind BackendKind, s string, opts ...Option) *Buffer {
	return NewWithStore(NewStore(kind, strings.ToValidUTF8(s, "\uFFFD")), opts...)
}

// NewString creates a buffer on a contiguous StringStore.
func NewString(s string, opts ...Option) *Buffer {
	return New(BackendString, s, opts...)
}

// NewRope creates a buffer on a RopeStore.
func NewRope(s string, opts ...Option) *Buffer {
	return New(BackendRope, s, opts...)
}

// NewSequence creates a buffer on a SequenceStore.
func NewSequence(s string, opts ...Option) *Buffer {
	return New(BackendSequence, s, opts...)
}

// NewWithStore wraps an existing store.
func NewWithStore(store Store, opts ...Option) *Buffer {
	b := &Buffer{store: store, seg: segment.DefaultSegmenter}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Store returns the underlying store.
func (b *Buffer) Store() Store {
	return b.store
}

// Segmenter returns the segmenter used by this buffer.
func (b *Buffer) Segmenter() segment.Segmenter {
	return b.seg
}

// Read Operations

func (b *Buffer) Len() int                  { return b.store.Len() }
func (b *Buffer) Raw(start, end int) string { return b.store.Raw(start, end) }
func (b *Buffer) Version() uint64           { return b.version }
func (b *Buffer) String() string            { return b.store.Raw(0, b.store.Len()) }

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", err
	}
	if !segment.IsCodepointBoundary(b, start) || !segment.IsCodepointBoundary(b, end) {
		return "", ErrNotCodepointBoundary
	}
	return b.store.Raw(start, end), nil
}

// Write Operations

// Write inserts s at off.
func (b *Buffer) Write(off int, s string) (Delta, error) {
	if off < 0 || off > b.Len() {
		return Delta{}, ErrOffsetOutOfRange
	}
	return b.ReplaceRange(off, off, s)
}

// ReplaceRange replaces [start, end) with s. Both ends must be grapheme
// boundaries. Replacing nothing with nothing is a no-op that leaves the
// version unchanged.
func (b *Buffer) ReplaceRange(start, end int, s string) (Delta, error) {
	return b.replace(start, end, s, true)
}

// RestoreRange replaces [start, end) with s. Both ends must be codepoint
// boundaries; grapheme boundaries are not required.
func (b *Buffer) RestoreRange(start, end int, s string) (Delta, error) {
	return b.replace(start, end, s, false)
}

func (b *Buffer) replace(start, end int, s string, graphemes bool) (Delta, error) {
	if err := b.checkRange(start, end); err != nil {
		return Delta{}, err
	}
	if !validUTF8(s) {
		return Delta{}, ErrInvalidUTF8
	}
	if graphemes {
		if err := b.checkGrapheme(start); err != nil {
			return Delta{}, err
		}
		if end != start {
			if err := b.checkGrapheme(end); err != nil {
				return Delta{}, err
			}
		}
	} else if !segment.IsCodepointBoundary(b, start) || !segment.IsCodepointBoundary(b, end) {
		return Delta{}, ErrNotCodepointBoundary
	}

	d := Delta{Start: start, End: end, InsertLen: len(s)}
	if d.IsIdentity() {
		return d, nil
	}
	b.store.Replace(start, end, s)
	b.version++
	return d, nil
}

// Drain removes [start, end) and returns the removed text.
func (b *Buffer) Drain(start, end int) (string, Delta, error) {
	if err := b.checkRange(start, end); err != nil {
		return "", Delta{}, err
	}
	removed := b.store.Raw(start, end)
	d, err := b.ReplaceRange(start, end, "")
	if err != nil {
		return "", Delta{}, err
	}
	return removed, d, nil
}

// Position Mapping

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.store.Lines() + 1
}

// LineOfOffset returns the number of line feeds before off.
func (b *Buffer) LineOfOffset(off int) (int, error) {
	if off < 0 || off > b.Len() {
		return 0, ErrOffsetOutOfRange
	}
	return b.store.LineOfOffset(off), nil
}

// OffsetOfLine returns the offset of the first byte of line. The line
// after the last one maps to Len.
func (b *Buffer) OffsetOfLine(line int) (int, error) {
	if line < 0 || line > b.LineCount() {
		return 0, ErrLineOutOfRange
	}
	return b.store.LineStart(line), nil
}

// OffsetToPosition converts off to a Position.
func (b *Buffer) OffsetToPosition(off int) (Position, error) {
	if off < 0 || off > b.Len() {
		return Position{}, ErrOffsetOutOfRange
	}
	if !segment.IsCodepointBoundary(b, off) {
		return Position{}, ErrNotCodepointBoundary
	}
	line := b.store.LineOfOffset(off)
	start := b.store.LineStart(line)
	col := UTF8ToUTF16(b.store.Raw(start, off), off-start)
	return Position{Line: line, Character: col}, nil
}

// OffsetOfPosition converts p to a byte offset. Columns past the end of
// the line clamp to the line end.
func (b *Buffer) OffsetOfPosition(p Position) (int, error) {
	if p.Line < 0 || p.Line >= b.LineCount() || p.Character < 0 {
		return 0, ErrLineOutOfRange
	}
	start := b.store.LineStart(p.Line)
	end := b.store.LineStart(p.Line + 1)
	line := lineContent(b.store.Raw(start, end))
	return start + UTF16ToUTF8(line, p.Character), nil
}

func (b *Buffer) checkRange(start, end int) error {
	if start < 0 || start > end || end > b.Len() {
		return ErrInvalidRange
	}
	return nil
}

func (b *Buffer) checkGrapheme(off int) error {
	ok, err := b.seg.IsBoundary(b, off)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotGraphemeBoundary
	}
	return nil
}
