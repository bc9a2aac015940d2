package tracking

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffType indicates the type of a diff hunk.
type DiffType uint8

const (
	// DiffEqual indicates unchanged lines.
	DiffEqual DiffType = iota

	// DiffInsert indicates added lines.
	DiffInsert

	// DiffDelete indicates removed lines.
	DiffDelete
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// LineDiff is a run of lines sharing one diff type.
type LineDiff struct {
	Type DiffType

	// OldStart and NewStart are 0-based line numbers of the run in the
	// old and new text.
	OldStart int
	NewStart int

	// Lines holds the line contents without terminators.
	Lines []string
}

// DiffResult is the line diff between two texts.
type DiffResult struct {
	Hunks []LineDiff
}

// HasChanges reports whether any lines were inserted or deleted.
func (dr DiffResult) HasChanges() bool {
	for _, h := range dr.Hunks {
		if h.Type != DiffEqual {
			return true
		}
	}
	return false
}

// InsertedLines returns the number of added lines.
func (dr DiffResult) InsertedLines() int {
	return dr.count(DiffInsert)
}

// DeletedLines returns the number of removed lines.
func (dr DiffResult) DeletedLines() int {
	return dr.count(DiffDelete)
}

func (dr DiffResult) count(t DiffType) int {
	n := 0
	for _, h := range dr.Hunks {
		if h.Type == t {
			n += len(h.Lines)
		}
	}
	return n
}

// String renders the diff with "+", "-" and " " line prefixes.
func (dr DiffResult) String() string {
	var sb strings.Builder
	for _, h := range dr.Hunks {
		prefix := " "
		switch h.Type {
		case DiffInsert:
			prefix = "+"
		case DiffDelete:
			prefix = "-"
		}
		for _, line := range h.Lines {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Diff computes a line-level diff from oldText to newText.
func Diff(oldText, newText string) DiffResult {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var result DiffResult
	oldLine, newLine := 0, 0
	for _, d := range diffs {
		ls := splitLines(d.Text)
		if len(ls) == 0 {
			continue
		}
		hunk := LineDiff{OldStart: oldLine, NewStart: newLine, Lines: ls}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			hunk.Type = DiffEqual
			oldLine += len(ls)
			newLine += len(ls)
		case diffmatchpatch.DiffInsert:
			hunk.Type = DiffInsert
			newLine += len(ls)
		case diffmatchpatch.DiffDelete:
			hunk.Type = DiffDelete
			oldLine += len(ls)
		}
		result.Hunks = append(result.Hunks, hunk)
	}
	return result
}

// splitLines splits text into lines, dropping "\n" and "\r\n" terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		p = strings.TrimSuffix(p, "\n")
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}
