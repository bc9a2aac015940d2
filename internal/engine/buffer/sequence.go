package buffer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID identifies one inserted codepoint of a SequenceStore. IDs order
// first by Lamport time, then by replica.
type ID struct {
	Lamport uint64
	Replica uuid.UUID
}

// IsZero reports whether id is the head sentinel.
func (id ID) IsZero() bool {
	return id.Lamport == 0 && id.Replica == uuid.Nil
}

// Less orders IDs for sibling tie-breaks.
func (id ID) Less(other ID) bool {
	if id.Lamport != other.Lamport {
		return id.Lamport < other.Lamport
	}
	return strings.Compare(id.Replica.String(), other.Replica.String()) < 0
}

// String returns "lamport@replica".
func (id ID) String() string {
	return fmt.Sprintf("%d@%s", id.Lamport, id.Replica)
}

type element struct {
	id      ID
	parent  ID
	text    string
	deleted bool
}

// SequenceStore is a replicated-growable-array style store: each
// codepoint is an element addressed by an ID and the parent it was
// inserted after. Deletions leave tombstones. Only local edits are
// supported; the store never merges remote operations.
type SequenceStore struct {
	replica uuid.UUID
	clock   uint64
	elems   []element

	// Visible text and the element index of each visible byte run,
	// rebuilt after every edit.
	text    string
	visible []int
	starts  []int
	lines   lineIndex
}

// NewSequenceStore creates a sequence store with a fresh replica ID.
func NewSequenceStore(s string) *SequenceStore {
	return NewSequenceStoreWithReplica(s, uuid.New())
}

// NewSequenceStoreWithReplica creates a sequence store for replica.
func NewSequenceStoreWithReplica(s string, replica uuid.UUID) *SequenceStore {
	st := &SequenceStore{replica: replica}
	st.insertAt(0, ID{}, s)
	st.rebuild()
	return st
}

// Replica returns the store's replica ID.
func (s *SequenceStore) Replica() uuid.UUID { return s.replica }

// Clock returns the current Lamport time.
func (s *SequenceStore) Clock() uint64 { return s.clock }

// Tombstones returns the number of deleted elements still stored.
func (s *SequenceStore) Tombstones() int {
	return len(s.elems) - len(s.visible)
}

// IDAt returns the ID of the visible codepoint starting at off.
func (s *SequenceStore) IDAt(off int) (ID, bool) {
	i := s.visibleIndex(off)
	if i < 0 || i >= len(s.visible) || s.starts[i] != off {
		return ID{}, false
	}
	return s.elems[s.visible[i]].id, true
}

func (s *SequenceStore) Len() int { return len(s.text) }

func (s *SequenceStore) Raw(start, end int) string {
	start = max(start, 0)
	end = min(end, len(s.text))
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

func (s *SequenceStore) Lines() int {
	s.lines.ensure(s.fullText)
	return len(s.lines.starts) - 1
}

func (s *SequenceStore) LineOfOffset(off int) int {
	s.lines.ensure(s.fullText)
	return s.lines.lineOf(off)
}

func (s *SequenceStore) LineStart(line int) int {
	s.lines.ensure(s.fullText)
	return s.lines.start(line, len(s.text))
}

func (s *SequenceStore) fullText() string { return s.text }

// Replace tombstones the visible codepoints in [start, end) and inserts
// text after the visible codepoint preceding start.
func (s *SequenceStore) Replace(start, end int, text string) {
	first := s.visibleIndex(start)
	last := s.visibleIndex(end)
	for i := first; i < last; i++ {
		s.elems[s.visible[i]].deleted = true
	}

	parent := ID{}
	at := 0
	if first > 0 {
		pi := s.visible[first-1]
		parent = s.elems[pi].id
		at = pi + 1
	}
	s.insertAt(at, parent, text)
	s.rebuild()
}

// visibleIndex returns the index into visible of the codepoint starting
// at off, or len(visible) at the end of the text.
func (s *SequenceStore) visibleIndex(off int) int {
	lo, hi := 0, len(s.starts)
	for lo < hi {
		mid := (lo + hi) / 2
		if s.starts[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// insertAt places one element per codepoint of text at physical index
// at. Each element's parent is its predecessor, the first's is parent.
func (s *SequenceStore) insertAt(at int, parent ID, text string) {
	if text == "" {
		return
	}
	added := make([]element, 0, len(text))
	for _, r := range text {
		s.clock++
		id := ID{Lamport: s.clock, Replica: s.replica}
		added = append(added, element{id: id, parent: parent, text: string(r)})
		parent = id
	}
	tail := append(added, s.elems[at:]...)
	s.elems = append(s.elems[:at], tail...)
}

func (s *SequenceStore) rebuild() {
	var sb strings.Builder
	s.visible = s.visible[:0]
	s.starts = s.starts[:0]
	for i, e := range s.elems {
		if e.deleted {
			continue
		}
		s.visible = append(s.visible, i)
		s.starts = append(s.starts, sb.Len())
		sb.WriteString(e.text)
	}
	s.text = sb.String()
	s.lines.invalidate()
}
