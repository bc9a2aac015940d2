package rope

import "unicode/utf8"

// Chunk size bounds for leaf text.
const (
	MinChunkSize    = 64
	MaxChunkSize    = 128
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// splitIntoChunks cuts s into pieces of about TargetChunkSize bytes,
// never inside a UTF-8 sequence.
func splitIntoChunks(s string) []string {
	if len(s) <= MaxChunkSize {
		return []string{s}
	}
	chunks := make([]string, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := utf8Boundary(s, TargetChunkSize)
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}

// utf8Boundary returns the first rune start at or after i, or the
// previous one when none follows within a rune's length.
func utf8Boundary(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for j := i; j < len(s) && j < i+utf8.UTFMax; j++ {
		if utf8.RuneStart(s[j]) {
			return j
		}
	}
	for j := i; j > 0; j-- {
		if utf8.RuneStart(s[j]) {
			return j
		}
	}
	return len(s)
}
