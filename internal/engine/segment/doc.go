// Package segment provides the Unicode boundary logic used by the buffer
// and its cursors.
//
// Two families of functions live here:
//
//   - Classifiers: pure functions mapping a rune to a CharClass and pairs
//     (or quads) of classes to word and paragraph boundary judgments.
//   - Segmentation: codepoint and grapheme-cluster boundary queries over a
//     Source, built on github.com/rivo/uniseg.
//
// Grapheme Context:
//
// Grapheme segmentation is only correct when it starts from a known
// boundary. Queries restart from a safe anchor at or before the requested
// offset: the start of the text, the position after a line feed, or the
// position between two ASCII bytes that do not form CR LF. If no anchor
// exists within MaxPreContext bytes the query fails with a
// *PreContextError instead of guessing.
//
// Basic usage:
//
//	src := segment.String("a\U0001F600b")
//	next, ok, err := segment.NextGraphemeBoundary(src, 1) // 5, true, nil
//	prev, ok, err := segment.PrevGraphemeBoundary(src, 5) // 1, true, nil
package segment
