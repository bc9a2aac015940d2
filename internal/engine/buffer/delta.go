package buffer

import "fmt"

// Delta describes one edit: the bytes [Start, End) of the old text were
// replaced by InsertLen bytes.
type Delta struct {
	Start     int
	End       int
	InsertLen int
}

// InsertDelta returns the delta of inserting n bytes at off.
func InsertDelta(off, n int) Delta {
	return Delta{Start: off, End: off, InsertLen: n}
}

// DeleteDelta returns the delta of removing [start, end).
func DeleteDelta(start, end int) Delta {
	return Delta{Start: start, End: end}
}

// DeletedLen returns the number of removed bytes.
func (d Delta) DeletedLen() int {
	return d.End - d.Start
}

// Shift returns the change in text length.
func (d Delta) Shift() int {
	return d.InsertLen - (d.End - d.Start)
}

// InsertEnd returns the offset just past the inserted text in the new
// coordinate space.
func (d Delta) InsertEnd() int {
	return d.Start + d.InsertLen
}

// IsIdentity reports whether the delta changes nothing.
func (d Delta) IsIdentity() bool {
	return d.Start == d.End && d.InsertLen == 0
}

// Transform maps an offset in the old text to the new text.
//
// Offsets before the edit are unchanged and offsets at or after its end
// shift by Shift. An offset at the edit start, or inside the deleted
// range, lands before the inserted text, or after it when after is set.
func (d Delta) Transform(off int, after bool) int {
	switch {
	case off < d.Start:
		return off
	case off >= d.End && off > d.Start:
		return off + d.Shift()
	case after:
		return d.Start + d.InsertLen
	default:
		return d.Start
	}
}

// String returns a compact description of the delta.
func (d Delta) String() string {
	return fmt.Sprintf("Delta[%d,%d)+%d", d.Start, d.End, d.InsertLen)
}

// Drift decides which way a range edge moves when text is inserted
// exactly at that edge.
type Drift uint8

const (
	// DriftInside grows the range to cover text inserted at either edge.
	DriftInside Drift = iota
	// DriftOutside keeps text inserted at either edge out of the range.
	DriftOutside
)

// String returns the drift name.
func (d Drift) String() string {
	if d == DriftOutside {
		return "outside"
	}
	return "inside"
}

// TransformRange maps the range [start, end) through the delta.
func (d Delta) TransformRange(start, end int, drift Drift) (int, int) {
	inside := drift == DriftInside
	return d.Transform(start, !inside), d.Transform(end, inside)
}

// ParseDrift maps "inside" and "outside" to a Drift. The empty string
// means inside.
func ParseDrift(s string) (Drift, error) {
	switch s {
	case "", "inside":
		return DriftInside, nil
	case "outside":
		return DriftOutside, nil
	}
	return DriftInside, fmt.Errorf("unknown drift %q", s)
}
