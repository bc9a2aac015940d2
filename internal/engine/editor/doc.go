// Package editor applies edit transactions to a document.
//
// A document state is the text buffer, the current selection and the span
// set. Transactions are the only way the rest of the engine mutates that
// state:
//   - InsertAtCursorHead, Paste, InsertNewLine: write at the cursor,
//     replacing a non-empty selection
//   - DeleteBackward, DeleteSelection: remove text before the cursor or
//     under the selection
//   - MoveCursorLeft, MoveCursorRight, MoveCursorHeadTo, SelectWord: move
//     the selection without touching text
//   - Undo, Redo: step through the edit history
//
// Apply reports (true, nil) when the state changed, (false, nil) for a
// well-formed no-op such as moving left at offset 0, and a non-nil *Error
// for structural failures like a non-boundary offset.
//
// Every text change updates the buffer, maps the span set through the
// resulting delta, records an undo entry and appends to the change log
// before Apply returns. A failed buffer call leaves spans, selection and
// history untouched.
package editor
