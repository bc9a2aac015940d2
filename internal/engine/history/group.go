package history

import (
	"errors"
	"fmt"
	"slices"
)

// ErrCheckpointLost indicates a checkpoint whose entry has been undone or
// evicted from the undo stack.
var ErrCheckpointLost = errors.New("checkpoint no longer in history")

// BeginGroup starts a command group. Commands pushed while grouping are
// combined into a single undo unit. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup finishes a command group.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false

	switch len(h.groupCmds) {
	case 0:
	case 1:
		h.pushLocked(h.groupCmds[0])
	default:
		h.pushLocked(NewCompoundCommand(h.groupName, h.groupCmds...))
	}
	h.groupCmds = nil
}

// CancelGroup ends the group and undoes its commands on t, newest first.
// Nothing is added to history.
func (h *History) CancelGroup(t Target) error {
	h.mu.Lock()
	cmds := h.groupCmds
	h.grouping = false
	h.groupCmds = nil
	h.mu.Unlock()

	for i := len(cmds) - 1; i >= 0; i-- {
		if err := cmds[i].Undo(t); err != nil {
			return fmt.Errorf("cancel group step %d: %w", i, err)
		}
	}
	return nil
}

// IsGrouping returns true if currently in a command group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Group runs fn inside a group. If fn fails the group is cancelled, so
// its edits are undone on t. Inside an open group fn simply joins it.
func (h *History) Group(name string, t Target, fn func() error) error {
	if h.IsGrouping() {
		return fn()
	}
	h.BeginGroup(name)
	if err := fn(); err != nil {
		if cerr := h.CancelGroup(t); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}
	h.EndGroup()
	return nil
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	top *undoEntry
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return Checkpoint{}
	}
	return Checkpoint{top: h.undoStack[len(h.undoStack)-1]}
}

// UndoToCheckpoint undoes all operations since the checkpoint. It fails
// with ErrCheckpointLost, without undoing anything, once the checkpoint's
// entry has left the undo stack.
func (h *History) UndoToCheckpoint(cp Checkpoint, t Target) error {
	h.mu.Lock()
	found := cp.top == nil || slices.Contains(h.undoStack, cp.top)
	h.mu.Unlock()
	if !found {
		return ErrCheckpointLost
	}

	for {
		h.mu.Lock()
		n := len(h.undoStack)
		done := n == 0 || h.undoStack[n-1] == cp.top
		h.mu.Unlock()
		if done {
			return nil
		}
		if err := h.Undo(t); err != nil {
			return err
		}
	}
}
