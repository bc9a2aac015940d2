package segment

// Source is read access to UTF-8 text by byte offset.
type Source interface {
	// Len returns the byte length of the text.
	Len() int

	// Raw returns the bytes in [start, end) clamped to [0, Len], without
	// codepoint validation.
	Raw(start, end int) string
}

// String adapts a Go string to Source.
type String string

// Len returns the byte length.
func (s String) Len() int { return len(s) }

// Raw returns s[start:end] clamped to the string.
func (s String) Raw(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return string(s[start:end])
}
