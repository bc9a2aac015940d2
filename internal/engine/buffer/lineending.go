package buffer

import (
	"fmt"
	"strings"
)

// LineEnding specifies the line break inserted by new-line edits.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// String returns the escaped form of the line ending.
func (le LineEnding) String() string {
	if le == LineEndingCRLF {
		return "\\r\\n"
	}
	return "\\n"
}

// Sequence returns the line break characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// ParseLineEnding maps "lf" and "crlf" to a LineEnding.
func ParseLineEnding(s string) (LineEnding, error) {
	switch strings.ToLower(s) {
	case "", "lf", "unix":
		return LineEndingLF, nil
	case "crlf", "windows":
		return LineEndingCRLF, nil
	}
	return LineEndingLF, fmt.Errorf("unknown line ending %q", s)
}

// DetectLineEnding returns the dominant line ending of s, LF when s has
// no line breaks.
func DetectLineEnding(s string) LineEnding {
	crlf := strings.Count(s, "\r\n")
	lf := strings.Count(s, "\n") - crlf
	if crlf > lf {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// NormalizeLineEndings rewrites every line break in s to le.
func NormalizeLineEndings(s string, le LineEnding) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if le == LineEndingCRLF {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}
