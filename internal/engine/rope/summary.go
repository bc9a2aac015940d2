package rope

// Summary aggregates metrics for a span of text.
type Summary struct {
	Bytes int // UTF-8 bytes
	Lines int // line feeds
	UTF16 int // UTF-16 code units
}

// Add combines two adjacent summaries.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Bytes: s.Bytes + o.Bytes,
		Lines: s.Lines + o.Lines,
		UTF16: s.UTF16 + o.UTF16,
	}
}

// Summarize computes the summary of s.
func Summarize(s string) Summary {
	sum := Summary{Bytes: len(s)}
	for _, r := range s {
		if r == '\n' {
			sum.Lines++
		}
		sum.UTF16 += UTF16Len(r)
	}
	return sum
}

// UTF16Len returns the number of UTF-16 code units needed for r.
func UTF16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
