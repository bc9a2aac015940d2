// Package engine provides the Document facade of the bluebook rich-text
// engine.
//
// A Document combines a text buffer, the current selection, annotation
// spans, undo history and a change log behind one thread-safe API. All
// text mutation goes through Apply with an edit transaction:
//
//	doc := engine.New(engine.WithContent("Hello world"))
//	doc.Select(5, 5)
//	doc.Apply(ctx, editor.InsertAtCursorHead{Value: " there"})
//	doc.Text() // "Hello there world"
//
// # Sub-packages
//
//   - segment: boundary classifiers and grapheme/codepoint segmentation
//   - rope: immutable B+ tree rope
//   - buffer: the TextBuffer capability with string, rope and sequence backends
//   - cursor: cursors of seven granularities and selections
//   - span: interval tree, attribute registry and the span set
//   - history: undo and redo of applied edits
//   - tracking: change log, snapshots and line diffs
//   - editor: edit transactions and the state machine applying them
//
// # Thread Safety
//
// Document methods may be called from multiple goroutines. Reads share a
// read lock; Apply, Annotate, Select and LoadSpans take the write lock. Rendering
// through Segments is cached per document state.
//
// # Observability
//
// Every Apply and Annotate opens an OpenTelemetry span named after the
// transaction kind ("tx.paste", "tx.annotate") that records the outcome.
// Failures are logged at warn level and applied transactions at debug.
package engine
