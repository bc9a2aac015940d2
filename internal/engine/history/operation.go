package history

import (
	"time"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/cursor"
	"github.com/dshills/bluebook/internal/engine/span"
)

// Target is the document state commands act on. Replace must not record
// history of its own.
type Target interface {
	Replace(start, end int, text string) error
	RestoreSpans(spans *span.Set)
	SetSelection(sel cursor.Selection)
}

// Operation represents a single undoable edit.
type Operation struct {
	Start   int
	OldText string
	NewText string

	SelectionBefore cursor.Selection
	SelectionAfter  cursor.Selection

	// Span snapshots; nil leaves spans untouched on undo or redo.
	SpansBefore *span.Set
	SpansAfter  *span.Set

	Timestamp time.Time
}

// NewOperation records the replacement of oldText at start by newText.
func NewOperation(start int, oldText, newText string) *Operation {
	return &Operation{
		Start:     start,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// Delta returns the forward delta of the edit.
func (op *Operation) Delta() buffer.Delta {
	return buffer.Delta{Start: op.Start, End: op.Start + len(op.OldText), InsertLen: len(op.NewText)}
}

// InverseDelta returns the delta that undoes the edit.
func (op *Operation) InverseDelta() buffer.Delta {
	return buffer.Delta{Start: op.Start, End: op.Start + len(op.NewText), InsertLen: len(op.OldText)}
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.OldText == "" && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return op.OldText != "" && op.NewText == ""
}

// IsReplace returns true if this operation replaced text.
func (op *Operation) IsReplace() bool {
	return op.OldText != "" && op.NewText != ""
}

func (op *Operation) apply(t Target, from, to string, sel cursor.Selection, spans *span.Set) error {
	if err := t.Replace(op.Start, op.Start+len(from), to); err != nil {
		return err
	}
	if spans != nil {
		t.RestoreSpans(spans.Clone())
	}
	t.SetSelection(sel)
	return nil
}

// OperationInfo describes a history entry for display.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
}
