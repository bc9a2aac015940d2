// Package buffer provides the text storage of the document engine.
//
// TextBuffer is the capability every backend satisfies: slicing, writing,
// draining and replacing byte ranges, plus line and UTF-16 position
// mapping. Buffer implements it over a pluggable Store, chosen when the
// buffer is created:
//
//   - StringStore: one contiguous, growable byte slice
//   - RopeStore: the immutable B+ tree from the rope package
//   - SequenceStore: a CRDT-ordered codepoint sequence with tombstones
//
// Offsets are byte offsets. Reads require codepoint boundaries; writes
// additionally require grapheme cluster boundaries so edits never split a
// user-perceived character.
//
// Every successful mutation increments Version and returns a Delta
// describing the edit. Cursors compare versions to detect that they were
// created against older content, and the span model uses the Delta to
// re-index annotations.
//
// Position Types:
//
// Position is a 0-based line and a column counted in UTF-16 code units,
// the convention of text protocols such as LSP. Characters outside the
// Basic Multilingual Plane count as two units.
//
// A Buffer is not safe for concurrent use; the engine facade serializes
// access.
package buffer
