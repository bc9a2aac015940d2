package buffer

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/bluebook/internal/engine/rope"
)

// Store is the storage strategy behind a Buffer. Stores trust their
// callers: Buffer validates every offset before calling them.
type Store interface {
	// Len returns the byte length.
	Len() int

	// Raw returns the bytes in [start, end) clamped to the text.
	Raw(start, end int) string

	// Replace swaps [start, end) for s.
	Replace(start, end int, s string)

	// Lines returns the number of line feeds.
	Lines() int

	// LineOfOffset returns the number of line feeds before off.
	LineOfOffset(off int) int

	// LineStart returns the offset after the line-th line feed.
	LineStart(line int) int
}

// BackendKind names a Store implementation.
type BackendKind uint8

const (
	BackendString BackendKind = iota
	BackendRope
	BackendSequence
)

// String returns the configuration name of the backend.
func (k BackendKind) String() string {
	switch k {
	case BackendRope:
		return "rope"
	case BackendSequence:
		return "sequence"
	default:
		return "string"
	}
}

// ParseBackendKind maps a configuration name to a BackendKind.
func ParseBackendKind(s string) (BackendKind, error) {
	switch strings.ToLower(s) {
	case "", "string", "contiguous":
		return BackendString, nil
	case "rope":
		return BackendRope, nil
	case "sequence", "crdt":
		return BackendSequence, nil
	}
	return BackendString, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
}

// NewStore creates an empty store of the given kind.
func NewStore(kind BackendKind, s string) Store {
	switch kind {
	case BackendRope:
		return NewRopeStore(s)
	case BackendSequence:
		return NewSequenceStore(s)
	default:
		return NewStringStore(s)
	}
}

// lineIndex caches the offsets that follow each line feed.
type lineIndex struct {
	starts []int
	valid  bool
}

func (li *lineIndex) invalidate() {
	li.valid = false
}

func (li *lineIndex) ensure(text func() string) {
	if li.valid {
		return
	}
	s := text()
	li.starts = append(li.starts[:0], 0)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			li.starts = append(li.starts, i+1)
		}
	}
	li.valid = true
}

func (li *lineIndex) lineOf(off int) int {
	return sort.SearchInts(li.starts, off+1) - 1
}

func (li *lineIndex) start(line int, length int) int {
	if line < 0 {
		return 0
	}
	if line >= len(li.starts) {
		return length
	}
	return li.starts[line]
}

// StringStore keeps the text in one contiguous byte slice.
type StringStore struct {
	data  []byte
	lines lineIndex
}

// NewStringStore creates a contiguous store holding s.
func NewStringStore(s string) *StringStore {
	return &StringStore{data: []byte(s)}
}

func (s *StringStore) Len() int { return len(s.data) }

func (s *StringStore) Raw(start, end int) string {
	start = max(start, 0)
	end = min(end, len(s.data))
	if start >= end {
		return ""
	}
	return string(s.data[start:end])
}

func (s *StringStore) Replace(start, end int, text string) {
	s.data = slices.Replace(s.data, start, end, []byte(text)...)
	s.lines.invalidate()
}

func (s *StringStore) Lines() int {
	s.lines.ensure(s.text)
	return len(s.lines.starts) - 1
}

func (s *StringStore) LineOfOffset(off int) int {
	s.lines.ensure(s.text)
	return s.lines.lineOf(off)
}

func (s *StringStore) LineStart(line int) int {
	s.lines.ensure(s.text)
	return s.lines.start(line, len(s.data))
}

func (s *StringStore) text() string { return string(s.data) }

// RopeStore keeps the text in an immutable rope. Line queries use the
// rope's cached summaries instead of a separate index.
type RopeStore struct {
	rope rope.Rope
}

// NewRopeStore creates a rope-backed store holding s.
func NewRopeStore(s string) *RopeStore {
	return &RopeStore{rope: rope.FromString(s)}
}

func (s *RopeStore) Len() int                  { return s.rope.Len() }
func (s *RopeStore) Raw(start, end int) string { return s.rope.Slice(start, end) }
func (s *RopeStore) Lines() int                { return s.rope.Summary().Lines }
func (s *RopeStore) LineOfOffset(off int) int  { return s.rope.LineOfOffset(off) }
func (s *RopeStore) LineStart(line int) int    { return s.rope.LineStart(line) }

func (s *RopeStore) Replace(start, end int, text string) {
	s.rope = s.rope.Replace(start, end, text)
}

// Rope returns the current rope. Ropes are immutable, so the result is a
// free snapshot.
func (s *RopeStore) Rope() rope.Rope {
	return s.rope
}
