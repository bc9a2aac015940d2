package segment

import "unicode"

// CharClass is the coarse classification used by word and paragraph
// boundary detection.
type CharClass uint8

const (
	Cr CharClass = iota
	Lf
	Space
	Punctuation
	Other
)

// String returns the class name.
func (c CharClass) String() string {
	switch c {
	case Cr:
		return "cr"
	case Lf:
		return "lf"
	case Space:
		return "space"
	case Punctuation:
		return "punctuation"
	default:
		return "other"
	}
}

// Classify returns the class of r.
func Classify(r rune) CharClass {
	switch {
	case r == '\r':
		return Cr
	case r == '\n':
		return Lf
	case unicode.IsSpace(r):
		return Space
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return Punctuation
	default:
		return Other
	}
}

// IsSentenceTerminal reports whether r ends a sentence.
func IsSentenceTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '\u3002', '\uff01', '\uff1f':
		return true
	}
	return false
}

// IsSentenceCloser reports whether r may trail a sentence terminal
// (closing quotes and brackets) without starting a new sentence.
func IsSentenceCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '}', '\u00bb', '\u201d', '\u2019', '\u300d', '\u300f':
		return true
	}
	return false
}
