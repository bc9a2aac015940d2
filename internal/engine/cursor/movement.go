package cursor

import "github.com/dshills/bluebook/internal/engine/buffer"

// MoveMode decides whether a movement collapses or extends the selection.
type MoveMode uint8

const (
	// Move collapses the selection to a point at the new position.
	Move MoveMode = iota
	// Extend keeps the anchor and moves the head.
	Extend
)

// MoveHorizontal moves the head of sel by n grapheme clusters in dir.
// Movement stops at the text edge. It returns the new selection and the
// number of clusters actually crossed.
func MoveHorizontal(buf buffer.TextBuffer, sel Selection, n int, dir Orientation, mode MoveMode) (Selection, int, error) {
	seg := segmenterOf(buf)
	pos := sel.Head
	moved := 0
	for moved < n {
		var (
			next int
			ok   bool
			err  error
		)
		if dir == Backward {
			next, ok, err = seg.Prev(buf, pos)
		} else {
			next, ok, err = seg.Next(buf, pos)
		}
		if err != nil {
			return sel, 0, err
		}
		if !ok {
			break
		}
		pos = next
		moved++
	}

	if mode == Extend {
		return Selection{Anchor: sel.Anchor, Head: pos}, moved, nil
	}
	return Point(pos), moved, nil
}
