package cursor

import (
	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/segment"
)

// WordCursor moves between word starts.
type WordCursor struct {
	*walker
}

// NewWord creates a word cursor at off.
func NewWord(buf buffer.TextBuffer, off int) (*WordCursor, error) {
	w, err := newWalker(Word, buf, off, nextWordStart, prevWordStart)
	if err != nil {
		return nil, err
	}
	return &WordCursor{walker: w}, nil
}

// SelectWord returns the word around the cursor: the previous word start
// and the next one. Either end falls back to the cursor offset at the
// edge of the text. The cursor offset is unchanged.
func (c *WordCursor) SelectWord() (int, int, error) {
	initial := c.off
	start, _, err := c.Prev()
	if err != nil {
		return 0, 0, err
	}
	c.off = initial
	end, _, err := c.Next()
	c.off = initial
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// nextWordStart consumes codepoints until the position between two of
// them judges as a word start, or the text ends.
func nextWordStart(src buffer.TextBuffer, off int) (int, bool, error) {
	r, size := segment.RuneAt(src, off)
	if size == 0 {
		return off, false, nil
	}
	prop := segment.Classify(r)
	pos := off + size
	for {
		r, size := segment.RuneAt(src, pos)
		if size == 0 {
			break
		}
		next := segment.Classify(r)
		if segment.WordBoundaryOf(prop, next).IsStart() {
			break
		}
		prop = next
		pos += size
	}
	return pos, true, nil
}

func prevWordStart(src buffer.TextBuffer, off int) (int, bool, error) {
	r, size := segment.RuneBefore(src, off)
	if size == 0 {
		return off, false, nil
	}
	prop := segment.Classify(r)
	pos := off - size
	for {
		r, size := segment.RuneBefore(src, pos)
		if size == 0 {
			break
		}
		prev := segment.Classify(r)
		if segment.WordBoundaryOf(prev, prop).IsStart() {
			break
		}
		prop = prev
		pos -= size
	}
	return pos, true, nil
}
