package history

import (
	"errors"
	"testing"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/dshills/bluebook/internal/engine/cursor"
	"github.com/dshills/bluebook/internal/engine/span"
)

type fakeTarget struct {
	buf   *buffer.Buffer
	spans *span.Set
	sel   cursor.Selection
	fail  bool
}

func newFakeTarget(text string) *fakeTarget {
	return &fakeTarget{buf: buffer.NewString(text), spans: span.NewSet(nil)}
}

func (f *fakeTarget) Replace(start, end int, text string) error {
	if f.fail {
		return errors.New("replace failed")
	}
	_, err := f.buf.ReplaceRange(start, end, text)
	return err
}

func (f *fakeTarget) RestoreSpans(s *span.Set)          { f.spans = s }
func (f *fakeTarget) SetSelection(sel cursor.Selection) { f.sel = sel }

// edit applies an insert-or-replace to f and returns the recorded command.
func edit(t *testing.T, f *fakeTarget, start, end int, text string) Command {
	t.Helper()
	old, _ := f.buf.Slice(start, end)
	op := NewOperation(start, old, text)
	op.SelectionBefore = f.sel
	op.SpansBefore = f.spans.Clone()
	if err := f.Replace(start, end, text); err != nil {
		t.Fatal(err)
	}
	f.spans.Update(op.Delta(), buffer.DriftInside)
	f.sel = cursor.Point(start + len(text))
	op.SelectionAfter = f.sel
	op.SpansAfter = f.spans.Clone()
	return NewEditCommand("edit", op)
}

func TestUndoRedo(t *testing.T) {
	f := newFakeTarget("Hello world")
	h := New(0)
	if h.MaxEntries() != DefaultMaxEntries {
		t.Errorf("MaxEntries = %d", h.MaxEntries())
	}

	h.Push(edit(t, f, 5, 5, " there"))
	h.Push(edit(t, f, 0, 5, "Goodbye"))
	if got := f.buf.String(); got != "Goodbye there world" {
		t.Fatalf("got %q", got)
	}

	if err := h.Undo(f); err != nil {
		t.Fatal(err)
	}
	if got := f.buf.String(); got != "Hello there world" {
		t.Errorf("after undo got %q", got)
	}
	if f.sel != cursor.Point(11) {
		t.Errorf("selection = %v, want Point(11)", f.sel)
	}

	if err := h.Undo(f); err != nil {
		t.Fatal(err)
	}
	if got := f.buf.String(); got != "Hello world" {
		t.Errorf("after second undo got %q", got)
	}
	if !errors.Is(h.Undo(f), ErrNothingToUndo) {
		t.Error("expected ErrNothingToUndo")
	}

	if err := h.Redo(f); err != nil {
		t.Fatal(err)
	}
	if got := f.buf.String(); got != "Hello there world" {
		t.Errorf("after redo got %q", got)
	}
	if h.UndoCount() != 1 || h.RedoCount() != 1 {
		t.Errorf("counts = %d/%d", h.UndoCount(), h.RedoCount())
	}

	// A new edit clears the redo stack.
	h.Push(edit(t, f, 0, 0, ">"))
	if h.CanRedo() {
		t.Error("push should clear redo")
	}
	if !errors.Is(h.Redo(f), ErrNothingToRedo) {
		t.Error("expected ErrNothingToRedo")
	}
}

func TestUndoRestoresSpans(t *testing.T) {
	f := newFakeTarget("0123456789abcdefghij")
	if _, err := f.spans.Annotate(span.Interval{Start: 10, End: 20}, span.Bold(true), 1); err != nil {
		t.Fatal(err)
	}
	h := New(10)

	h.Push(edit(t, f, 0, 12, ""))
	if got := f.spans.Spans()[0].Interval; got != (span.Interval{Start: 0, End: 8}) {
		t.Fatalf("span after delete = %v", got)
	}

	if err := h.Undo(f); err != nil {
		t.Fatal(err)
	}
	if got := f.spans.Spans()[0].Interval; got != (span.Interval{Start: 10, End: 20}) {
		t.Errorf("span after undo = %v", got)
	}
	if err := h.Redo(f); err != nil {
		t.Fatal(err)
	}
	if got := f.spans.Spans()[0].Interval; got != (span.Interval{Start: 0, End: 8}) {
		t.Errorf("span after redo = %v", got)
	}
}

func TestUndoFailureKeepsEntry(t *testing.T) {
	f := newFakeTarget("abc")
	h := New(10)
	h.Push(edit(t, f, 3, 3, "d"))

	f.fail = true
	if err := h.Undo(f); err == nil {
		t.Fatal("expected error")
	}
	if h.UndoCount() != 1 || h.RedoCount() != 0 {
		t.Errorf("counts = %d/%d", h.UndoCount(), h.RedoCount())
	}
}

func TestMaxEntries(t *testing.T) {
	f := newFakeTarget("")
	h := New(3)
	for i := 0; i < 5; i++ {
		h.Push(edit(t, f, f.buf.Len(), f.buf.Len(), "x"))
	}
	if h.UndoCount() != 3 {
		t.Errorf("UndoCount = %d, want 3", h.UndoCount())
	}
}

func TestGroupUndoesTogether(t *testing.T) {
	f := newFakeTarget("ab")
	h := New(10)

	err := h.Group("typing", f, func() error {
		h.Push(edit(t, f, 2, 2, "c"))
		return h.Group("inner", f, func() error {
			h.Push(edit(t, f, 3, 3, "d"))
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, want 1", h.UndoCount())
	}
	info := h.UndoInfo()
	if info[0].Description != "typing" {
		t.Errorf("description = %q", info[0].Description)
	}

	if err := h.Undo(f); err != nil {
		t.Fatal(err)
	}
	if got := f.buf.String(); got != "ab" {
		t.Errorf("after group undo got %q", got)
	}
}

func TestGroupCancelled(t *testing.T) {
	f := newFakeTarget("ab")
	h := New(10)
	want := errors.New("boom")

	err := h.Group("typing", f, func() error {
		h.Push(edit(t, f, 2, 2, "c"))
		h.Push(edit(t, f, 3, 3, "d"))
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
	if h.CanUndo() || h.IsGrouping() {
		t.Error("cancelled group must leave no history")
	}
	if got := f.buf.String(); got != "ab" {
		t.Errorf("cancelled group left %q", got)
	}
}

func TestCheckpoint(t *testing.T) {
	f := newFakeTarget("")
	h := New(10)
	h.Push(edit(t, f, 0, 0, "a"))
	cp := h.CreateCheckpoint()
	h.Push(edit(t, f, 1, 1, "b"))
	h.Push(edit(t, f, 2, 2, "c"))

	if err := h.UndoToCheckpoint(cp, f); err != nil {
		t.Fatal(err)
	}
	if got := f.buf.String(); got != "a" {
		t.Errorf("got %q", got)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
}

func TestCheckpointLost(t *testing.T) {
	f := newFakeTarget("")
	h := New(2)
	h.Push(edit(t, f, 0, 0, "a"))
	cp := h.CreateCheckpoint()
	h.Push(edit(t, f, 1, 1, "b"))
	h.Push(edit(t, f, 2, 2, "c"))

	// The checkpoint's entry was evicted by the size limit.
	if err := h.UndoToCheckpoint(cp, f); !errors.Is(err, ErrCheckpointLost) {
		t.Fatalf("err = %v, want ErrCheckpointLost", err)
	}
	if got := f.buf.String(); got != "abc" {
		t.Errorf("got %q", got)
	}

	empty := New(10)
	start := empty.CreateCheckpoint()
	g := newFakeTarget("")
	empty.Push(edit(t, g, 0, 0, "x"))
	if err := empty.UndoToCheckpoint(start, g); err != nil {
		t.Fatal(err)
	}
	if g.buf.String() != "" || empty.CanUndo() {
		t.Errorf("got %q, CanUndo %v", g.buf.String(), empty.CanUndo())
	}
}

func TestEditCommandDescription(t *testing.T) {
	tests := []struct {
		op   *Operation
		want string
	}{
		{NewOperation(3, "", "xy"), "edit: insert 2 bytes at 3"},
		{NewOperation(3, "xy", ""), "edit: delete 2 bytes at 3"},
		{NewOperation(3, "x", "yz"), "edit: replace 1 bytes at 3"},
	}
	for _, tt := range tests {
		if got := NewEditCommand("edit", tt.op).Description(); got != tt.want {
			t.Errorf("Description = %q, want %q", got, tt.want)
		}
	}

	op := NewOperation(3, "x", "yz")
	if op.Delta() != (buffer.Delta{Start: 3, End: 4, InsertLen: 2}) {
		t.Errorf("Delta = %v", op.Delta())
	}
	if op.InverseDelta() != (buffer.Delta{Start: 3, End: 5, InsertLen: 1}) {
		t.Errorf("InverseDelta = %v", op.InverseDelta())
	}
}
