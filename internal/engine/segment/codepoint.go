package segment

import "unicode/utf8"

// NextCodepoint returns the offset of the codepoint boundary after off.
func NextCodepoint(src Source, off int) (int, bool, error) {
	n := src.Len()
	if off < 0 || off > n {
		return 0, false, ErrOffsetOutOfRange
	}
	if off == n {
		return off, false, nil
	}
	_, size := utf8.DecodeRuneInString(src.Raw(off, off+utf8.UTFMax))
	return off + size, true, nil
}

// PrevCodepoint returns the offset of the codepoint boundary before off.
func PrevCodepoint(src Source, off int) (int, bool, error) {
	if off < 0 || off > src.Len() {
		return 0, false, ErrOffsetOutOfRange
	}
	if off == 0 {
		return 0, false, nil
	}
	_, size := utf8.DecodeLastRuneInString(src.Raw(off-utf8.UTFMax, off))
	return off - size, true, nil
}

// RuneAt decodes the rune starting at off. It returns size 0 at the end
// of the text.
func RuneAt(src Source, off int) (rune, int) {
	if off < 0 || off >= src.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(src.Raw(off, off+utf8.UTFMax))
}

// RuneBefore decodes the rune ending at off. It returns size 0 at the
// start of the text.
func RuneBefore(src Source, off int) (rune, int) {
	if off <= 0 || off > src.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(src.Raw(off-utf8.UTFMax, off))
}

// IsCodepointBoundary reports whether off falls between two codepoints.
func IsCodepointBoundary(src Source, off int) bool {
	n := src.Len()
	if off < 0 || off > n {
		return false
	}
	if off == 0 || off == n {
		return true
	}
	return utf8.RuneStart(src.Raw(off, off+1)[0])
}
