package cursor

import (
	"unicode"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/segment"
)

// NewSentence creates a cursor over sentence starts. A sentence starts at
// the first non-space character after a run of terminals, optionally
// followed by closing quotes or brackets, and at least one space.
func NewSentence(buf buffer.TextBuffer, off int) (Cursor, error) {
	return asCursor(newWalker(Sentence, buf, off, nextSentence, prevSentence))
}

func nextSentence(src buffer.TextBuffer, off int) (int, bool, error) {
	pos := off
	for {
		next, ok, err := segment.NextCodepoint(src, pos)
		if err != nil || !ok {
			return off, false, err
		}
		pos = next
		if isSentenceStart(src, pos) {
			return pos, true, nil
		}
	}
}

func prevSentence(src buffer.TextBuffer, off int) (int, bool, error) {
	pos := off
	for {
		prev, ok, err := segment.PrevCodepoint(src, pos)
		if err != nil || !ok {
			return off, false, err
		}
		pos = prev
		if isSentenceStart(src, pos) {
			return pos, true, nil
		}
	}
}

func isSentenceStart(src buffer.TextBuffer, p int) bool {
	if p == 0 || p == src.Len() {
		return true
	}
	if r, _ := segment.RuneAt(src, p); unicode.IsSpace(r) {
		return false
	}

	q := p
	spaces := 0
	for {
		r, size := segment.RuneBefore(src, q)
		if size == 0 || !unicode.IsSpace(r) {
			break
		}
		spaces++
		q -= size
	}
	if spaces == 0 {
		return false
	}
	for {
		r, size := segment.RuneBefore(src, q)
		if size == 0 || !segment.IsSentenceCloser(r) {
			break
		}
		q -= size
	}
	r, size := segment.RuneBefore(src, q)
	return size > 0 && segment.IsSentenceTerminal(r)
}
