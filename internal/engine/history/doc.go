// Package history provides undo/redo for the document engine.
//
// The history system uses the Command pattern. Every applied edit is
// recorded as an Operation holding:
//   - The replaced text and the text that replaced it
//   - The selection before and after the edit
//   - Snapshots of the span set before and after the edit
//
// Undo writes the old text back and restores the earlier span snapshot,
// so spans return exactly to their previous state rather than being
// re-derived from an inverse delta.
//
// # History Stack
//
// The History type manages undo/redo stacks and command grouping:
//
//	h := history.New(1000) // Max 1000 undo entries
//	h.Push(history.NewEditCommand("insert", op))
//	h.Undo(target)
//	h.Redo(target)
//
// # Grouping
//
// Commands pushed between BeginGroup and EndGroup undo as one unit:
//
//	h.BeginGroup("paste and format")
//	// ... several edits ...
//	h.EndGroup()
//
// Group wraps the pair around a function and undoes the group's edits
// when the function fails. Checkpoints mark a position to undo back to.
//
// Pushing a new command clears the redo stack.
package history
