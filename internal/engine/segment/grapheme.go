package segment

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// DefaultMaxPreContext is the number of bytes a grapheme query may read
// before the queried offset looking for a restart point.
const DefaultMaxPreContext = 4096

// initialWindow is the first look-ahead used when searching forward.
const initialWindow = 64

// Segmenter finds grapheme cluster boundaries.
type Segmenter struct {
	// MaxPreContext bounds the backward scan for a restart point.
	// Zero means DefaultMaxPreContext.
	MaxPreContext int
}

// DefaultSegmenter is used by the package-level functions.
var DefaultSegmenter = Segmenter{MaxPreContext: DefaultMaxPreContext}

// NextGraphemeBoundary returns the first grapheme boundary after off.
func NextGraphemeBoundary(src Source, off int) (int, bool, error) {
	return DefaultSegmenter.Next(src, off)
}

// PrevGraphemeBoundary returns the last grapheme boundary before off.
func PrevGraphemeBoundary(src Source, off int) (int, bool, error) {
	return DefaultSegmenter.Prev(src, off)
}

// NthNextGraphemeBoundary steps forward n grapheme boundaries from off.
func NthNextGraphemeBoundary(src Source, off, n int) (int, bool, error) {
	return DefaultSegmenter.NthNext(src, off, n)
}

// NthPrevGraphemeBoundary steps backward n grapheme boundaries from off.
func NthPrevGraphemeBoundary(src Source, off, n int) (int, bool, error) {
	return DefaultSegmenter.NthPrev(src, off, n)
}

// IsGraphemeBoundary reports whether off is a grapheme boundary.
func IsGraphemeBoundary(src Source, off int) (bool, error) {
	return DefaultSegmenter.IsBoundary(src, off)
}

func (s Segmenter) maxContext() int {
	if s.MaxPreContext <= 0 {
		return DefaultMaxPreContext
	}
	return s.MaxPreContext
}

// anchor returns the greatest restart point p <= off. Segmentation that
// starts at p produces the same boundaries as segmenting the whole text.
func (s Segmenter) anchor(src Source, off int) (int, error) {
	if off == 0 {
		return 0, nil
	}
	lo := off - s.maxContext()
	if lo < 0 {
		lo = 0
	}
	// Room to decode the rune before lo and the rune at off.
	base := lo - utf8.UTFMax
	if base < 0 {
		base = 0
	}
	window := src.Raw(base, off+utf8.UTFMax)

	for p := off; p >= lo; p-- {
		if p == 0 {
			return 0, nil
		}
		i := p - base
		if i >= len(window) {
			// p is the end of the text; it is always a boundary.
			if p == src.Len() {
				return p, nil
			}
			continue
		}
		if !utf8.RuneStart(window[i]) {
			continue
		}
		before, cur := window[i-1], window[i]
		if before == '\n' {
			return p, nil
		}
		if before < utf8.RuneSelf && cur < utf8.RuneSelf {
			if before != '\r' || cur != '\n' {
				return p, nil
			}
			continue
		}
		prev, _ := utf8.DecodeLastRuneInString(window[:i])
		next, _ := utf8.DecodeRuneInString(window[i:])
		if safeRestart(prev, next) {
			return p, nil
		}
	}
	return 0, &PreContextError{Offset: off}
}

// safeRestart reports whether a cluster boundary always falls between
// prev and next, whatever text precedes prev. The pair must break on its
// own, and prev must not be a rune that joins with later text through a
// longer sequence: ZWJ and other format characters, combining marks
// (conjunct linkers are among them), regional indicators, or emoji
// modifiers.
func safeRestart(prev, next rune) bool {
	if prev == utf8.RuneError || next == utf8.RuneError {
		return false
	}
	if unicode.In(prev, unicode.Mn, unicode.Me, unicode.Mc, unicode.Cf) ||
		isRegionalIndicator(prev) || isEmojiModifier(prev) {
		return false
	}
	var buf [2 * utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], prev)
	m := utf8.EncodeRune(buf[n:], next)
	first, _, _, _ := uniseg.FirstGraphemeClusterInString(string(buf[:n+m]), -1)
	return len(first) == n
}

func isRegionalIndicator(r rune) bool { return r >= 0x1F1E6 && r <= 0x1F1FF }

func isEmojiModifier(r rune) bool { return r >= 0x1F3FB && r <= 0x1F3FF }

// Next returns the first grapheme boundary strictly after off. ok is
// false when off is the end of the text.
func (s Segmenter) Next(src Source, off int) (int, bool, error) {
	n := src.Len()
	if off < 0 || off > n {
		return 0, false, ErrOffsetOutOfRange
	}
	if off == n {
		return off, false, nil
	}

	start, err := s.anchor(src, off)
	if err != nil {
		return 0, false, err
	}

	end := off + initialWindow
	for {
		if end > n {
			end = n
		}
		text := src.Raw(start, end)
		pos := start
		state := -1
		var cluster string
		for len(text) > 0 {
			cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
			pos += len(cluster)
			if pos <= off {
				continue
			}
			// The boundary after a cluster depends on the rune that
			// follows it, so that rune must be fully inside the window.
			if end == n || pos+utf8.UTFMax <= end {
				return pos, true, nil
			}
			break
		}
		end = off + 2*(end-off) + initialWindow
	}
}

// Prev returns the last grapheme boundary strictly before off. ok is
// false when off is zero.
func (s Segmenter) Prev(src Source, off int) (int, bool, error) {
	n := src.Len()
	if off < 0 || off > n {
		return 0, false, ErrOffsetOutOfRange
	}
	if off == 0 {
		return 0, false, nil
	}

	start, err := s.anchor(src, off-1)
	if err != nil {
		return 0, false, err
	}

	text := src.Raw(start, off+utf8.UTFMax)
	prev := start
	pos := start
	state := -1
	var cluster string
	for len(text) > 0 {
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		pos += len(cluster)
		if pos >= off {
			break
		}
		prev = pos
	}
	return prev, true, nil
}

// NthNext applies Next n times. If any step fails the whole call reports
// ok=false (or the error) and off is returned unchanged.
func (s Segmenter) NthNext(src Source, off, n int) (int, bool, error) {
	pos := off
	for i := 0; i < n; i++ {
		next, ok, err := s.Next(src, pos)
		if err != nil {
			return off, false, err
		}
		if !ok {
			return off, false, nil
		}
		pos = next
	}
	return pos, true, nil
}

// NthPrev applies Prev n times with the same failure rule as NthNext.
func (s Segmenter) NthPrev(src Source, off, n int) (int, bool, error) {
	pos := off
	for i := 0; i < n; i++ {
		prev, ok, err := s.Prev(src, pos)
		if err != nil {
			return off, false, err
		}
		if !ok {
			return off, false, nil
		}
		pos = prev
	}
	return pos, true, nil
}

// IsBoundary reports whether off is a grapheme boundary.
func (s Segmenter) IsBoundary(src Source, off int) (bool, error) {
	n := src.Len()
	if off < 0 || off > n {
		return false, ErrOffsetOutOfRange
	}
	if off == 0 || off == n {
		return true, nil
	}
	if !IsCodepointBoundary(src, off) {
		return false, nil
	}
	prev, _, err := s.Prev(src, off)
	if err != nil {
		return false, err
	}
	next, _, err := s.Next(src, prev)
	if err != nil {
		return false, err
	}
	return next == off, nil
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
