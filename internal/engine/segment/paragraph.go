package segment

// ParagraphBoundaryOf judges the position between prev and next using one
// more character of context on each side. A paragraph break is a run of
// two line breaks (LF LF or LF CR LF) between non-break text.
func ParagraphBoundaryOf(beforePrev, prev, next, afterNext CharClass) WordBoundary {
	switch {
	case beforePrev == Other && prev == Lf && next == Lf && afterNext == Other:
		return Both
	case prev == Lf && next == Lf && afterNext == Other:
		return Start
	case beforePrev == Lf && prev == Cr && next == Lf && afterNext == Other:
		return Start
	case beforePrev == Other && prev == Lf && next == Lf:
		return End
	case beforePrev == Other && prev == Cr && next == Lf && afterNext == Cr:
		return End
	default:
		return Interior
	}
}
