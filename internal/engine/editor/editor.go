package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/cursor"
	"github.com/dshills/bluebook/internal/engine/history"
	"github.com/dshills/bluebook/internal/engine/span"
	"github.com/dshills/bluebook/internal/engine/tracking"
)

// Option configures an Editor.
type Option func(*Editor)

// WithDrift sets how span edges react to text inserted exactly at them.
func WithDrift(d buffer.Drift) Option {
	return func(e *Editor) { e.drift = d }
}

// WithLineEnding sets the line break written by InsertNewLine and used
// for pasted text.
func WithLineEnding(le buffer.LineEnding) Option {
	return func(e *Editor) { e.lineEnding = le }
}

// WithNormalization sets the Unicode normalization applied to pastes.
func WithNormalization(n Normalization) Option {
	return func(e *Editor) { e.normalization = n }
}

// WithHistory replaces the default undo history.
func WithHistory(h *history.History) Option {
	return func(e *Editor) { e.history = h }
}

// WithTracker replaces the default change log.
func WithTracker(t *tracking.Tracker) Option {
	return func(e *Editor) { e.tracker = t }
}

// Editor owns a document state and applies transactions to it. It is not
// safe for concurrent use.
type Editor struct {
	buf   buffer.TextBuffer
	spans *span.Set

	// sels holds every selection; transactions act on its primary and
	// edits move the others.
	sels *cursor.SelectionSet

	history *history.History
	tracker *tracking.Tracker

	drift         buffer.Drift
	lineEnding    buffer.LineEnding
	normalization Normalization
}

// New creates an editor over buf and spans with the cursor at offset 0.
// A nil spans starts with an empty set on the default registry.
func New(buf buffer.TextBuffer, spans *span.Set, opts ...Option) *Editor {
	if spans == nil {
		spans = span.NewSet(nil)
	}
	e := &Editor{
		buf:   buf,
		spans: spans,
		sels:  cursor.NewSelectionSet(cursor.Point(0)),
		drift: buffer.DriftInside,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = history.New(history.DefaultMaxEntries)
	}
	if e.tracker == nil {
		e.tracker = tracking.NewTracker()
	}
	return e
}

func (e *Editor) Buffer() buffer.TextBuffer    { return e.buf }
func (e *Editor) Spans() *span.Set             { return e.spans }
func (e *Editor) Selection() cursor.Selection  { return e.sels.Primary() }
func (e *Editor) History() *history.History    { return e.history }
func (e *Editor) Tracker() *tracking.Tracker   { return e.tracker }
func (e *Editor) Drift() buffer.Drift          { return e.drift }
func (e *Editor) Normalization() Normalization { return e.normalization }

// Select validates and sets the selection.
func (e *Editor) Select(anchor, head int) error {
	sel, err := cursor.NewSelection(e.buf, anchor, head)
	if err != nil {
		return &Error{Op: "select", Err: err}
	}
	e.sels.SetPrimary(sel)
	return nil
}

// AddSelection adds a selection and makes it primary. Selections that
// overlap merge.
func (e *Editor) AddSelection(anchor, head int) error {
	sel, err := cursor.NewSelection(e.buf, anchor, head)
	if err != nil {
		return &Error{Op: "add_selection", Err: err}
	}
	e.sels.Add(sel)
	return nil
}

// Selections returns every selection in position order.
func (e *Editor) Selections() []cursor.Selection { return e.sels.All() }

// CollapseSelections keeps only the primary selection. It reports whether
// any selection was dropped.
func (e *Editor) CollapseSelections() bool {
	if e.sels.Len() == 1 {
		return false
	}
	e.sels.Collapse()
	return true
}

// Group runs fn so that every edit it makes undoes as one step. When fn
// fails its edits are undone and the primary selection is put back.
func (e *Editor) Group(name string, fn func() error) error {
	sel := e.sels.Primary()
	if err := e.history.Group(name, e, fn); err != nil {
		e.sels.SetPrimary(sel)
		return err
	}
	return nil
}

// Checkpoint marks the current history position.
func (e *Editor) Checkpoint() history.Checkpoint {
	return e.history.CreateCheckpoint()
}

// UndoToCheckpoint undoes every edit recorded after cp.
func (e *Editor) UndoToCheckpoint(cp history.Checkpoint) error {
	if err := e.history.UndoToCheckpoint(cp, e); err != nil {
		return &Error{Op: "undo_to_checkpoint", Err: err}
	}
	return nil
}

// Annotate applies ann to iv and records the change as an undoable edit
// of zero width.
func (e *Editor) Annotate(iv span.Interval, ann span.Annotation) (bool, error) {
	if iv.End > e.buf.Len() {
		return false, &Error{Op: "annotate", Err: fmt.Errorf("%w: %s past end %d", buffer.ErrInvalidRange, iv, e.buf.Len())}
	}
	before := e.spans.Clone()
	ok, err := e.spans.AnnotateNext(iv, ann)
	if err != nil {
		return false, &Error{Op: "annotate", Err: err}
	}
	if !ok {
		return false, nil
	}
	op := history.NewOperation(iv.Start, "", "")
	sel := e.sels.Primary()
	op.SelectionBefore, op.SelectionAfter = sel, sel
	op.SpansBefore, op.SpansAfter = before, e.spans.Clone()
	e.history.Push(history.NewEditCommand("annotate "+ann.Key, op))
	return true, nil
}

// Apply consumes one transaction.
func (e *Editor) Apply(tx Transaction) (bool, error) {
	switch tx := tx.(type) {
	case InsertAtCursorHead:
		return e.insert(tx.Kind(), tx.Value)
	case Paste:
		text := e.normalization.Apply(tx.Clipboard)
		return e.insert(tx.Kind(), buffer.NormalizeLineEndings(text, e.lineEnding))
	case InsertNewLine:
		return e.insert(tx.Kind(), e.lineEnding.Sequence())
	case DeleteBackward:
		return e.deleteBackward(tx.Kind())
	case DeleteSelection:
		sel := e.sels.Primary()
		if sel.IsEmpty() {
			return false, nil
		}
		return e.edit(tx.Kind(), sel.From(), sel.To(), "")
	case MoveCursorLeft:
		return e.move(tx.Kind(), tx.N, cursor.Backward)
	case MoveCursorRight:
		return e.move(tx.Kind(), tx.N, cursor.Forward)
	case MoveCursorHeadTo:
		sel, err := cursor.NewSelection(e.buf, tx.Offset, tx.Offset)
		if err != nil {
			return false, &Error{Op: tx.Kind(), Err: err}
		}
		return e.setSelection(sel), nil
	case SelectWord:
		return e.selectWord(tx.Kind())
	case Undo:
		return e.step(tx.Kind(), e.history.Undo, history.ErrNothingToUndo)
	case Redo:
		return e.step(tx.Kind(), e.history.Redo, history.ErrNothingToRedo)
	case nil:
		return false, &Error{Op: "apply", Err: ErrUnknownTransaction}
	default:
		return false, &Error{Op: tx.Kind(), Err: ErrUnknownTransaction}
	}
}

func (e *Editor) insert(op, text string) (bool, error) {
	sel := e.sels.Primary()
	if text == "" && sel.IsEmpty() {
		return false, nil
	}
	return e.edit(op, sel.From(), sel.To(), text)
}

func (e *Editor) deleteBackward(op string) (bool, error) {
	sel := e.sels.Primary()
	if !sel.IsEmpty() {
		return e.edit(op, sel.From(), sel.To(), "")
	}
	prev, moved, err := cursor.MoveHorizontal(e.buf, sel, 1, cursor.Backward, cursor.Move)
	if err != nil {
		return false, &Error{Op: op, Err: err}
	}
	if moved == 0 {
		return false, nil
	}
	return e.edit(op, prev.Head, sel.Head, "")
}

func (e *Editor) move(op string, n int, dir cursor.Orientation) (bool, error) {
	if n < 0 {
		return false, &Error{Op: op, Err: ErrNegativeCount}
	}
	sel, _, err := cursor.MoveHorizontal(e.buf, e.sels.Primary(), n, dir, cursor.Move)
	if err != nil {
		return false, &Error{Op: op, Err: err}
	}
	return e.setSelection(sel), nil
}

func (e *Editor) selectWord(op string) (bool, error) {
	wc, err := cursor.NewWord(e.buf, e.sels.Primary().Head)
	if err != nil {
		return false, &Error{Op: op, Err: err}
	}
	start, end, err := wc.SelectWord()
	if err != nil {
		return false, &Error{Op: op, Err: err}
	}
	if start == end {
		return false, nil
	}
	return e.setSelection(cursor.Selection{Anchor: start, Head: end}), nil
}

func (e *Editor) step(op string, fn func(history.Target) error, empty error) (bool, error) {
	if err := fn(e); err != nil {
		if errors.Is(err, empty) {
			return false, nil
		}
		return false, &Error{Op: op, Err: err}
	}
	return true, nil
}

func (e *Editor) setSelection(sel cursor.Selection) bool {
	if sel == e.sels.Primary() {
		return false
	}
	e.sels.SetPrimary(sel)
	return true
}

// edit replaces [start, end) with text, leaves a point after it and
// records an undo entry.
func (e *Editor) edit(op string, start, end int, text string) (bool, error) {
	before := e.sels.Primary()
	spansBefore := e.spans.Clone()
	oldText, changed, err := e.replace(start, end, text, e.buf.ReplaceRange)
	if err != nil {
		return false, &Error{Op: op, Err: err}
	}
	after := cursor.Point(start + len(text))
	e.sels.SetPrimary(after)
	if !changed {
		return after != before, nil
	}

	rec := history.NewOperation(start, oldText, text)
	rec.SelectionBefore, rec.SelectionAfter = before, after
	rec.SpansBefore, rec.SpansAfter = spansBefore, e.spans.Clone()
	e.history.Push(history.NewEditCommand(op, rec))
	return true, nil
}

// replace writes text over [start, end) through write and moves spans
// and the change log with it.
func (e *Editor) replace(start, end int, text string, write func(int, int, string) (buffer.Delta, error)) (string, bool, error) {
	oldText, err := e.buf.Slice(start, end)
	if err != nil {
		return "", false, err
	}
	d, err := write(start, end, text)
	if err != nil {
		return "", false, err
	}
	if d.IsIdentity() {
		return oldText, false, nil
	}
	e.spans.Update(d, e.drift)
	e.sels.ApplyDelta(d, e.drift)
	e.tracker.Record(tracking.NewChange(e.buf.Version(), d, oldText, text))
	return oldText, true, nil
}

// Replace implements history.Target. It does not record history, and
// since it replays recorded edits it only requires codepoint boundaries.
func (e *Editor) Replace(start, end int, text string) error {
	_, _, err := e.replace(start, end, text, e.buf.RestoreRange)
	return err
}

// RestoreSpans implements history.Target.
func (e *Editor) RestoreSpans(spans *span.Set) {
	e.spans = spans
}

// SetSelection implements history.Target.
func (e *Editor) SetSelection(sel cursor.Selection) {
	e.sels.SetPrimary(sel)
}
