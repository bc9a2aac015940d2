package rope

import (
	"strings"
	"unicode/utf8"
)

// Rope is an immutable sequence of bytes stored as a balanced tree.
// The zero value is an empty rope.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{}
}

// FromString builds a rope from s.
func FromString(s string) Rope {
	if s == "" {
		return Rope{}
	}
	chunks := splitIntoChunks(s)
	leaves := make([]*node, len(chunks))
	for i, c := range chunks {
		leaves[i] = newLeaf(c)
	}
	return Rope{root: fromChildren(leaves)}
}

// Summary returns the metrics of the whole rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.summary
}

// Len returns the byte length.
func (r Rope) Len() int {
	return r.Summary().Bytes
}

// LineCount returns the number of lines, which is line feeds + 1.
func (r Rope) LineCount() int {
	return r.Summary().Lines + 1
}

// IsEmpty reports whether the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Height returns the tree height; 0 for an empty rope.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// String returns the full text.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in [start, end), clamped to the rope.
func (r Rope) Slice(start, end int) string {
	start = max(start, 0)
	end = min(end, r.Len())
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at off.
func (r Rope) ByteAt(off int) (byte, bool) {
	if off < 0 || off >= r.Len() {
		return 0, false
	}
	n := r.root
	for !n.isLeaf() {
		for _, c := range n.children {
			if off < c.summary.Bytes {
				n = c
				break
			}
			off -= c.summary.Bytes
		}
	}
	return n.text[off], true
}

// Split returns the ropes [0, off) and [off, Len).
func (r Rope) Split(off int) (Rope, Rope) {
	l, rt := split(r.root, off)
	return Rope{root: l}, Rope{root: rt}
}

// Concat returns r followed by other.
func (r Rope) Concat(other Rope) Rope {
	return Rope{root: concat(r.root, other.root)}
}

// Insert returns a rope with text inserted at off. Offsets past the end
// append.
func (r Rope) Insert(off int, text string) Rope {
	if text == "" {
		return r
	}
	left, right := r.Split(off)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete returns a rope without [start, end).
func (r Rope) Delete(start, end int) Rope {
	if start >= end {
		return r
	}
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace returns a rope with [start, end) replaced by text.
func (r Rope) Replace(start, end int, text string) Rope {
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	if text != "" {
		left = left.Concat(FromString(text))
	}
	return left.Concat(right)
}

// LineOfOffset returns the number of line feeds in [0, off).
func (r Rope) LineOfOffset(off int) int {
	off = min(max(off, 0), r.Len())
	line := 0
	n := r.root
	for n != nil && !n.isLeaf() {
		var next *node
		for _, c := range n.children {
			if off <= c.summary.Bytes {
				next = c
				break
			}
			off -= c.summary.Bytes
			line += c.summary.Lines
		}
		n = next
	}
	if n != nil {
		line += strings.Count(n.text[:off], "\n")
	}
	return line
}

// LineStart returns the offset of the first byte of line. Lines past the
// last one return Len.
func (r Rope) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line > r.Summary().Lines {
		return r.Len()
	}
	pos := 0
	n := r.root
	for !n.isLeaf() {
		for _, c := range n.children {
			if line <= c.summary.Lines {
				n = c
				break
			}
			line -= c.summary.Lines
			pos += c.summary.Bytes
		}
	}
	text := n.text
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line--
			if line == 0 {
				return pos + i + 1
			}
		}
	}
	return pos + len(text)
}

// UTF16Before returns the UTF-16 length of [0, off).
func (r Rope) UTF16Before(off int) int {
	off = min(max(off, 0), r.Len())
	units := 0
	n := r.root
	for n != nil && !n.isLeaf() {
		var next *node
		for _, c := range n.children {
			if off <= c.summary.Bytes {
				next = c
				break
			}
			off -= c.summary.Bytes
			units += c.summary.UTF16
		}
		n = next
	}
	if n != nil {
		for _, rn := range n.text[:off] {
			units += UTF16Len(rn)
		}
	}
	return units
}

// RuneAt decodes the rune starting at off.
func (r Rope) RuneAt(off int) (rune, int) {
	return utf8.DecodeRuneInString(r.Slice(off, off+utf8.UTFMax))
}

// Equal reports whether both ropes hold the same text.
func (r Rope) Equal(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}
	return r.String() == other.String()
}
