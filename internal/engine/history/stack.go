package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// undoEntry wraps a command with metadata.
type undoEntry struct {
	command   Command
	timestamp time.Time
}

// History manages undo/redo state for a document.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries int
}

// New creates a history keeping at most maxEntries undo steps.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push adds a command to the undo stack and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &undoEntry{
		command:   cmd,
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo undoes the last command. On failure the entry stays on the undo
// stack.
func (h *History) Undo(t Target) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Undo(t); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()
	return nil
}

// Redo re-applies the last undone command.
func (h *History) Redo(t Target) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := entry.command.Execute(t); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, entry)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

// UndoInfo returns descriptions of the undo stack, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo returns descriptions of the redo stack, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos(stack []*undoEntry) []OperationInfo {
	result := make([]OperationInfo, len(stack))
	for i, entry := range stack {
		result[i] = OperationInfo{
			Description: entry.command.Description(),
			Timestamp:   entry.timestamp,
		}
	}
	return result
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
