package segment

// WordBoundary is the judgment for the position between two characters.
type WordBoundary uint8

const (
	Interior WordBoundary = iota
	Start
	End
	Both
)

// String returns the boundary name.
func (b WordBoundary) String() string {
	switch b {
	case Start:
		return "start"
	case End:
		return "end"
	case Both:
		return "both"
	default:
		return "interior"
	}
}

// IsStart reports whether a word starts here.
func (b WordBoundary) IsStart() bool {
	return b == Start || b == Both
}

// IsEnd reports whether a word ends here.
func (b WordBoundary) IsEnd() bool {
	return b == End || b == Both
}

// IsBoundary reports whether the position is any kind of boundary.
func (b WordBoundary) IsBoundary() bool {
	return b != Interior
}

// WordBoundaryOf judges the position between a character of class prev
// and one of class next. The rules are ordered; the first match wins.
func WordBoundaryOf(prev, next CharClass) WordBoundary {
	switch {
	case prev == Lf && next == Lf:
		return Start
	case prev == Lf && next == Space:
		return Interior
	case prev == Cr && next == Lf:
		return Interior
	case prev == Space && next == Lf:
		return Interior
	case prev == Space && next == Cr:
		return Interior
	case prev == Space && next == Space:
		return Interior
	case next == Space:
		return End
	case prev == Space:
		return Start
	case prev == Lf:
		return Start
	case next == Cr:
		return End
	case next == Lf:
		return End
	case prev == Punctuation && next == Other:
		return Both
	case prev == Other && next == Punctuation:
		return Both
	default:
		return Interior
	}
}
