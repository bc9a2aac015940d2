// Package span stores style and annotation spans alongside a text buffer.
//
// A span is a half-open byte interval carrying one typed attribute such as
// bold, a link or a comment. Spans live in an augmented AVL interval tree
// so overlap queries stay logarithmic. When a new span overlaps an
// existing one of the same attribute type, the type's Behavior decides
// the outcome:
//
//   - Merge: same-valued spans coalesce into their union; spans with a
//     different value are trimmed out of the new range
//   - Delete: only the span with the higher order token survives
//   - AllowMultiple: both spans are kept
//
// After every text edit the owner must call Set.Update with the edit's
// delta so stored intervals stay in the buffer's coordinate space.
//
// Attribute types are looked up in a Registry. New kinds can be
// registered without touching the span logic.
package span
