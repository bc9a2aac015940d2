package cursor

import (
	"strings"

	"github.com/dshills/bluebook/internal/engine/buffer"
)

// NewLine creates a cursor over line starts. The text end counts as a
// stop after the last line.
func NewLine(buf buffer.TextBuffer, off int) (Cursor, error) {
	return asCursor(newWalker(Line, buf, off, nextLine, prevLine))
}

func nextLine(src buffer.TextBuffer, off int) (int, bool, error) {
	if off >= src.Len() {
		return off, false, nil
	}
	line, err := src.LineOfOffset(off)
	if err != nil {
		return off, false, err
	}
	next, err := src.OffsetOfLine(line + 1)
	if err != nil {
		return off, false, err
	}
	return next, true, nil
}

func prevLine(src buffer.TextBuffer, off int) (int, bool, error) {
	if off == 0 {
		return off, false, nil
	}
	line, err := src.LineOfOffset(off)
	if err != nil {
		return off, false, err
	}
	start, err := src.OffsetOfLine(line)
	if err != nil {
		return off, false, err
	}
	if start < off {
		return start, true, nil
	}
	start, err = src.OffsetOfLine(line - 1)
	if err != nil {
		return off, false, err
	}
	return start, true, nil
}

// NewBlock creates a cursor over blocks: runs of non-blank lines
// separated by blank ones.
func NewBlock(buf buffer.TextBuffer, off int) (Cursor, error) {
	return asCursor(newWalker(Block, buf, off, nextBlock, prevBlock))
}

func nextBlock(src buffer.TextBuffer, off int) (int, bool, error) {
	if off >= src.Len() {
		return off, false, nil
	}
	line, err := src.LineOfOffset(off)
	if err != nil {
		return off, false, err
	}
	for l := line + 1; l < src.LineCount(); l++ {
		start, ok, err := blockStart(src, l)
		if err != nil {
			return off, false, err
		}
		if ok && start > off {
			return start, true, nil
		}
	}
	return src.Len(), true, nil
}

func prevBlock(src buffer.TextBuffer, off int) (int, bool, error) {
	if off == 0 {
		return off, false, nil
	}
	line, err := src.LineOfOffset(off)
	if err != nil {
		return off, false, err
	}
	for l := line; l >= 0; l-- {
		start, ok, err := blockStart(src, l)
		if err != nil {
			return off, false, err
		}
		if ok && start < off {
			return start, true, nil
		}
	}
	return 0, true, nil
}

// blockStart reports whether line l begins a block and returns its
// offset. A block begins at a non-blank line that is the first line or
// follows a blank one.
func blockStart(src buffer.TextBuffer, l int) (int, bool, error) {
	blank, start, err := lineIsBlank(src, l)
	if err != nil || blank {
		return start, false, err
	}
	if l == 0 {
		return start, true, nil
	}
	prevBlank, _, err := lineIsBlank(src, l-1)
	return start, prevBlank, err
}

func lineIsBlank(src buffer.TextBuffer, l int) (bool, int, error) {
	start, err := src.OffsetOfLine(l)
	if err != nil {
		return false, 0, err
	}
	end, err := src.OffsetOfLine(l + 1)
	if err != nil {
		return false, 0, err
	}
	return strings.TrimSpace(src.Raw(start, end)) == "", start, nil
}
