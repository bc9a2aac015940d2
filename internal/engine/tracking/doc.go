// Package tracking keeps a bounded log of the edits applied to a document.
//
// It supports:
//   - Version-based change queries ("what changed since version N?")
//   - Named text snapshots for checkpointing document state
//   - Line-level diffs between snapshots and the current text
//
// # Usage
//
// Record every applied edit with the buffer version it produced:
//
//	tracker := tracking.NewTracker()
//	tracker.Record(tracking.NewChange(buf.Version(), delta, oldText, newText))
//
//	changes := tracker.ChangesSince(lastSeen)
//
// # Snapshots
//
//	id := tracker.CreateSnapshot("before_import", buf.String(), buf.Version())
//	diff, err := tracker.DiffSinceSnapshot(id, buf.String())
//
// Diffs are computed with github.com/sergi/go-diff in line mode.
//
// All Tracker operations are safe for concurrent use. Snapshots are
// immutable once created.
package tracking
