package buffer

import (
	"fmt"
	"unicode/utf8"
)

// Position is a 0-based line and UTF-16 column.
type Position struct {
	Line      int
	Character int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Character)
}

// Compare returns -1, 0 or 1 ordering p relative to other.
func (p Position) Compare(other Position) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Character < other.Character:
		return -1
	case p.Character > other.Character:
		return 1
	}
	return 0
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// UTF8ToUTF16 counts the UTF-16 code units of the characters of s that
// start before byte offset off. Offsets past the end count the whole
// string.
func UTF8ToUTF16(s string, off int) int {
	units := 0
	for i, r := range s {
		if i >= off {
			break
		}
		units += utf16Len(r)
	}
	return units
}

// UTF16ToUTF8 returns the byte offset in s reached after units UTF-16
// code units. A count landing inside a surrogate pair rounds up to the
// end of that character; counts past the end return len(s).
func UTF16ToUTF8(s string, units int) int {
	count := 0
	for i, r := range s {
		if count >= units {
			return i
		}
		count += utf16Len(r)
	}
	return len(s)
}

// lineContent trims the line break from the end of a line's text.
func lineContent(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}

func validUTF8(s string) bool {
	return utf8.ValidString(s)
}
