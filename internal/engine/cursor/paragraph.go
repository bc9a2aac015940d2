package cursor

import (
	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/segment"
)

// NewParagraph creates a cursor that stops where runs of line breaks
// begin or end.
func NewParagraph(buf buffer.TextBuffer, off int) (Cursor, error) {
	return asCursor(newWalker(Paragraph, buf, off, nextParagraph, prevParagraph))
}

func nextParagraph(src buffer.TextBuffer, off int) (int, bool, error) {
	pos := off
	for {
		next, ok, err := segment.NextCodepoint(src, pos)
		if err != nil || !ok {
			return off, false, err
		}
		pos = next
		if pos == src.Len() || paragraphBoundaryAt(src, pos).IsBoundary() {
			return pos, true, nil
		}
	}
}

func prevParagraph(src buffer.TextBuffer, off int) (int, bool, error) {
	pos := off
	for {
		prev, ok, err := segment.PrevCodepoint(src, pos)
		if err != nil || !ok {
			return off, false, err
		}
		pos = prev
		if pos == 0 || paragraphBoundaryAt(src, pos).IsBoundary() {
			return pos, true, nil
		}
	}
}

// paragraphClass collapses everything but line breaks into Other.
func paragraphClass(r rune) segment.CharClass {
	switch r {
	case '\r':
		return segment.Cr
	case '\n':
		return segment.Lf
	default:
		return segment.Other
	}
}

// paragraphBoundaryAt judges the position p. Missing context at the text
// edges counts as Other.
func paragraphBoundaryAt(src buffer.TextBuffer, p int) segment.WordBoundary {
	prev, ps := segment.RuneBefore(src, p)
	next, ns := segment.RuneAt(src, p)
	if ps == 0 || ns == 0 {
		return segment.Interior
	}
	beforePrev, afterNext := segment.Other, segment.Other
	if r, size := segment.RuneBefore(src, p-ps); size > 0 {
		beforePrev = paragraphClass(r)
	}
	if r, size := segment.RuneAt(src, p+ns); size > 0 {
		afterNext = paragraphClass(r)
	}
	return segment.ParagraphBoundaryOf(beforePrev, paragraphClass(prev), paragraphClass(next), afterNext)
}
