package cursor

import (
	"fmt"

	"github.com/dshills/bluebook/internal/engine/buffer"
)

// Orientation is the direction a selection was made in.
type Orientation uint8

const (
	Forward Orientation = iota
	Backward
)

// String returns the orientation name.
func (o Orientation) String() string {
	if o == Backward {
		return "backward"
	}
	return "forward"
}

// Selection is a range of text with a direction. Anchor is where the
// selection started; Head is where typing occurs. Selection is an
// immutable value type.
type Selection struct {
	Anchor int
	Head   int
}

// NewSelection creates a selection after checking that both ends are
// grapheme boundaries of buf.
func NewSelection(buf buffer.TextBuffer, anchor, head int) (Selection, error) {
	seg := segmenterOf(buf)
	for _, off := range [2]int{anchor, head} {
		if off < 0 || off > buf.Len() {
			return Selection{}, fmt.Errorf("%w: %d", buffer.ErrOffsetOutOfRange, off)
		}
		ok, err := seg.IsBoundary(buf, off)
		if err != nil {
			return Selection{}, err
		}
		if !ok {
			return Selection{}, fmt.Errorf("%w: %d", buffer.ErrNotGraphemeBoundary, off)
		}
	}
	return Selection{Anchor: anchor, Head: head}, nil
}

// Point creates an empty selection at off.
func Point(off int) Selection {
	return Selection{Anchor: off, Head: off}
}

// From returns the lower bound.
func (s Selection) From() int {
	return min(s.Anchor, s.Head)
}

// To returns the upper bound.
func (s Selection) To() int {
	return max(s.Anchor, s.Head)
}

// Len returns the length of the selection in bytes.
func (s Selection) Len() int {
	return s.To() - s.From()
}

// IsEmpty returns true if the selection is a point.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Orientation returns Backward when the head precedes the anchor.
func (s Selection) Orientation() Orientation {
	if s.Head < s.Anchor {
		return Backward
	}
	return Forward
}

// Flip swaps anchor and head.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// WithOrientation returns the same range with the given orientation.
func (s Selection) WithOrientation(o Orientation) Selection {
	if o == Backward {
		return Selection{Anchor: s.To(), Head: s.From()}
	}
	return Selection{Anchor: s.From(), Head: s.To()}
}

// Extend grows the selection to cover [from, to), keeping its
// orientation.
func (s Selection) Extend(from, to int) Selection {
	if s.Orientation() == Backward {
		return Selection{Anchor: max(s.Anchor, to), Head: min(s.Head, from)}
	}
	return Selection{Anchor: min(s.Anchor, from), Head: max(s.Head, to)}
}

// Overlaps reports whether two selections share any position. Two points
// overlap only when equal.
func (s Selection) Overlaps(o Selection) bool {
	return s.From() == o.From() || (s.To() > o.From() && o.To() > s.From())
}

// ContainsRange reports whether o lies within s.
func (s Selection) ContainsRange(o Selection) bool {
	return s.From() <= o.From() && o.To() <= s.To()
}

// Contains reports whether pos lies in [From, To).
func (s Selection) Contains(pos int) bool {
	return s.From() <= pos && pos < s.To()
}

// Merge returns the smallest selection covering both. The result is
// backward only when both inputs are.
func (s Selection) Merge(o Selection) Selection {
	merged := Selection{Anchor: min(s.From(), o.From()), Head: max(s.To(), o.To())}
	if s.Orientation() == Backward && o.Orientation() == Backward {
		return merged.Flip()
	}
	return merged
}

// BlockCursor returns the offset a block-style cursor is drawn at: the
// grapheme before the head for forward selections, otherwise the head.
func (s Selection) BlockCursor(buf buffer.TextBuffer) (int, error) {
	if s.Head <= s.Anchor {
		return s.Head, nil
	}
	prev, ok, err := segmenterOf(buf).Prev(buf, s.Head)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.Head, nil
	}
	return prev, nil
}

// Transform maps the selection through an edit. Non-empty selections
// move their edges according to drift. A point moves past text inserted
// at it.
func (s Selection) Transform(d buffer.Delta, drift buffer.Drift) Selection {
	if s.IsEmpty() {
		return Point(d.Transform(s.Head, true))
	}
	from, to := d.TransformRange(s.From(), s.To(), drift)
	if to < from {
		to = from
	}
	moved := Selection{Anchor: from, Head: to}
	return moved.WithOrientation(s.Orientation())
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Point(%d)", s.Head)
	}
	dir := "->"
	if s.Orientation() == Backward {
		dir = "<-"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}
