package tracking

import "errors"

// ErrSnapshotNotFound is returned when a snapshot ID or name is unknown.
var ErrSnapshotNotFound = errors.New("snapshot not found")
