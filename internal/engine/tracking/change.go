package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/bluebook/internal/engine/buffer"
)

// ChangeType categorizes a change.
type ChangeType uint8

const (
	// ChangeInsert indicates text was inserted (OldText is empty).
	ChangeInsert ChangeType = iota

	// ChangeDelete indicates text was deleted (NewText is empty).
	ChangeDelete

	// ChangeReplace indicates text was replaced.
	ChangeReplace
)

// String returns a human-readable representation of the change type.
func (ct ChangeType) String() string {
	switch ct {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change is one applied edit.
type Change struct {
	// Version is the buffer version produced by the edit.
	Version uint64

	// Delta locates the edit in the text before it was applied.
	Delta buffer.Delta

	OldText string
	NewText string

	Timestamp time.Time
}

// NewChange builds a change record. The delta's InsertLen is taken from
// newText.
func NewChange(version uint64, d buffer.Delta, oldText, newText string) Change {
	d.InsertLen = len(newText)
	return Change{
		Version:   version,
		Delta:     d,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// Type classifies the change.
func (c Change) Type() ChangeType {
	switch {
	case c.OldText == "":
		return ChangeInsert
	case c.NewText == "":
		return ChangeDelete
	default:
		return ChangeReplace
	}
}

// Shift returns the change in text length.
func (c Change) Shift() int {
	return len(c.NewText) - len(c.OldText)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch c.Type() {
	case ChangeInsert:
		return fmt.Sprintf("v%d insert %q at %d", c.Version, clip(c.NewText, 20), c.Delta.Start)
	case ChangeDelete:
		return fmt.Sprintf("v%d delete %q at [%d,%d)", c.Version, clip(c.OldText, 20), c.Delta.Start, c.Delta.End)
	default:
		return fmt.Sprintf("v%d replace %q with %q at [%d,%d)", c.Version,
			clip(c.OldText, 10), clip(c.NewText, 10), c.Delta.Start, c.Delta.End)
	}
}

// ChangeSet is an ordered run of changes.
type ChangeSet struct {
	Changes []Change

	// StartVersion is the version before the first change.
	StartVersion uint64

	// EndVersion is the version after the last change.
	EndVersion uint64
}

// NewChangeSet creates an empty change set starting at version.
func NewChangeSet(version uint64) *ChangeSet {
	return &ChangeSet{StartVersion: version, EndVersion: version}
}

// Add appends a change.
func (cs *ChangeSet) Add(c Change) {
	cs.Changes = append(cs.Changes, c)
	cs.EndVersion = c.Version
}

// Len returns the number of changes.
func (cs *ChangeSet) Len() int {
	return len(cs.Changes)
}

// IsEmpty reports whether the set has no changes.
func (cs *ChangeSet) IsEmpty() bool {
	return len(cs.Changes) == 0
}

// TotalShift returns the net change in text length.
func (cs *ChangeSet) TotalShift() int {
	var n int
	for _, c := range cs.Changes {
		n += c.Shift()
	}
	return n
}

// Summary returns a short description such as
// "2 inserts, 1 deletes (+7/-3 bytes)".
func (cs *ChangeSet) Summary() string {
	if cs.IsEmpty() {
		return "no changes"
	}

	var inserts, deletes, replaces int
	var added, removed int
	for _, c := range cs.Changes {
		switch c.Type() {
		case ChangeInsert:
			inserts++
		case ChangeDelete:
			deletes++
		case ChangeReplace:
			replaces++
		}
		added += len(c.NewText)
		removed += len(c.OldText)
	}

	var parts []string
	if inserts > 0 {
		parts = append(parts, fmt.Sprintf("%d inserts", inserts))
	}
	if deletes > 0 {
		parts = append(parts, fmt.Sprintf("%d deletes", deletes))
	}
	if replaces > 0 {
		parts = append(parts, fmt.Sprintf("%d replaces", replaces))
	}
	return fmt.Sprintf("%s (+%d/-%d bytes)", strings.Join(parts, ", "), added, removed)
}
