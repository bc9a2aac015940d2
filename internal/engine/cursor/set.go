package cursor

import (
	"slices"

	"github.com/dshills/bluebook/internal/engine/buffer"
)

// SelectionSet manages multiple selections. Selections are kept sorted
// by position with overlapping ones merged. One selection is primary.
type SelectionSet struct {
	selections []Selection
	primary    int
}

// NewSelectionSet creates a set holding one selection.
func NewSelectionSet(initial Selection) *SelectionSet {
	return &SelectionSet{selections: []Selection{initial}}
}

// Primary returns the primary selection.
func (ss *SelectionSet) Primary() Selection {
	return ss.selections[ss.primary]
}

// PrimaryIndex returns the index of the primary selection in All.
func (ss *SelectionSet) PrimaryIndex() int {
	return ss.primary
}

// All returns a copy of all selections in position order.
func (ss *SelectionSet) All() []Selection {
	return slices.Clone(ss.selections)
}

// Len returns the number of selections.
func (ss *SelectionSet) Len() int {
	return len(ss.selections)
}

// Add inserts sel and makes it primary.
func (ss *SelectionSet) Add(sel Selection) {
	ss.selections = append(ss.selections, sel)
	ss.normalize(len(ss.selections) - 1)
}

// SetPrimary replaces the primary selection.
func (ss *SelectionSet) SetPrimary(sel Selection) {
	ss.selections[ss.primary] = sel
	ss.normalize(ss.primary)
}

// Collapse drops every selection except the primary.
func (ss *SelectionSet) Collapse() {
	ss.selections = []Selection{ss.Primary()}
	ss.primary = 0
}

// ApplyDelta maps every selection through an edit.
func (ss *SelectionSet) ApplyDelta(d buffer.Delta, drift buffer.Drift) {
	for i, sel := range ss.selections {
		ss.selections[i] = sel.Transform(d, drift)
	}
	ss.normalize(ss.primary)
}

// normalize sorts and merges the selections. primary is the index of the
// primary selection before sorting.
func (ss *SelectionSet) normalize(primary int) {
	type entry struct {
		sel     Selection
		primary bool
	}
	entries := make([]entry, len(ss.selections))
	for i, sel := range ss.selections {
		entries[i] = entry{sel: sel, primary: i == primary}
	}
	slices.SortStableFunc(entries, func(a, b entry) int {
		if a.sel.From() != b.sel.From() {
			return a.sel.From() - b.sel.From()
		}
		return a.sel.To() - b.sel.To()
	})

	merged := entries[:1]
	for _, e := range entries[1:] {
		last := &merged[len(merged)-1]
		if last.sel.Overlaps(e.sel) {
			last.sel = last.sel.Merge(e.sel)
			last.primary = last.primary || e.primary
			continue
		}
		merged = append(merged, e)
	}

	ss.selections = ss.selections[:0]
	ss.primary = 0
	for i, e := range merged {
		ss.selections = append(ss.selections, e.sel)
		if e.primary {
			ss.primary = i
		}
	}
}
