package span

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval indicates an interval whose end precedes its start.
var ErrInvalidInterval = errors.New("interval end precedes start")

// Interval is the half-open byte range [Start, End).
type Interval struct {
	Start int
	End   int
}

// NewInterval creates an interval, rejecting end < start.
func NewInterval(start, end int) (Interval, error) {
	if end < start {
		return Interval{}, fmt.Errorf("%w: [%d,%d)", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Len returns the width of the interval.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// IsEmpty reports whether the interval has zero width.
func (iv Interval) IsEmpty() bool {
	return iv.End <= iv.Start
}

// Intersects reports whether two non-empty intervals share a position.
// Zero-width intervals intersect nothing.
func (iv Interval) Intersects(o Interval) bool {
	return iv.Start < iv.End && o.Start < o.End && iv.End > o.Start && iv.Start < o.End
}

// Touches reports whether the intervals overlap or abut.
func (iv Interval) Touches(o Interval) bool {
	return iv.Start <= o.End && o.Start <= iv.End
}

// Contains reports whether off lies in [Start, End).
func (iv Interval) Contains(off int) bool {
	return iv.Start <= off && off < iv.End
}

// Union returns the smallest interval covering both.
func (iv Interval) Union(o Interval) Interval {
	return Interval{Start: min(iv.Start, o.Start), End: max(iv.End, o.End)}
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d)", iv.Start, iv.End)
}
