package tracking

import "sync"

// DefaultMaxChanges is the default capacity of the change log.
const DefaultMaxChanges = 10000

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxChanges sets the change log capacity. It must only be used with
// NewTracker.
func WithMaxChanges(maxChanges int) TrackerOption {
	return func(t *Tracker) {
		if maxChanges < 1 {
			maxChanges = 1
		}
		t.maxChanges = maxChanges
		t.changes = make([]Change, maxChanges)
	}
}

// Tracker records applied changes in a ring buffer and keeps named
// snapshots. All operations are thread-safe.
type Tracker struct {
	mu sync.RWMutex

	changes    []Change
	head       int // index of the oldest entry
	count      int
	maxChanges int

	// evicted is the highest version pushed out of the ring.
	evicted uint64

	snapshots *SnapshotManager
}

// NewTracker creates a tracker with default settings.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		maxChanges: DefaultMaxChanges,
		changes:    make([]Change, DefaultMaxChanges),
		snapshots:  NewSnapshotManager(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record appends a change, evicting the oldest when the log is full.
func (t *Tracker) Record(c Change) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := (t.head + t.count) % t.maxChanges
	if t.count < t.maxChanges {
		t.count++
	} else {
		t.evicted = t.changes[t.head].Version
		t.head = (t.head + 1) % t.maxChanges
	}
	t.changes[idx] = c
}

// each calls fn for every logged change, oldest first. Must hold lock.
func (t *Tracker) each(fn func(Change) bool) {
	for i := 0; i < t.count; i++ {
		if !fn(t.changes[(t.head+i)%t.maxChanges]) {
			return
		}
	}
}

// ChangesSince returns the logged changes that produced versions after
// version, in order.
func (t *Tracker) ChangesSince(version uint64) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changesBetweenLocked(version, ^uint64(0))
}

// ChangesBetween returns changes with from < Version <= to.
func (t *Tracker) ChangesBetween(from, to uint64) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changesBetweenLocked(from, to)
}

func (t *Tracker) changesBetweenLocked(from, to uint64) []Change {
	var result []Change
	t.each(func(c Change) bool {
		if c.Version > from && c.Version <= to {
			result = append(result, c)
		}
		return true
	})
	return result
}

// Complete reports whether the log still holds every change made after
// version.
func (t *Tracker) Complete(version uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return version >= t.evicted
}

// LatestChanges returns the most recent n changes, oldest first.
func (t *Tracker) LatestChanges(n int) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.count {
		n = t.count
	}
	if n <= 0 {
		return nil
	}
	result := make([]Change, n)
	for i := 0; i < n; i++ {
		result[i] = t.changes[(t.head+t.count-n+i)%t.maxChanges]
	}
	return result
}

// ChangeCount returns the number of logged changes.
func (t *Tracker) ChangeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// ChangeSetSince collects the changes after version into a ChangeSet.
func (t *Tracker) ChangeSetSince(version uint64) *ChangeSet {
	cs := NewChangeSet(version)
	for _, c := range t.ChangesSince(version) {
		cs.Add(c)
	}
	return cs
}

// Snapshot Operations

// CreateSnapshot stores a named snapshot of text at version.
func (t *Tracker) CreateSnapshot(name, text string, version uint64) SnapshotID {
	return t.snapshots.Create(name, text, version)
}

// Snapshot retrieves a snapshot by ID.
func (t *Tracker) Snapshot(id SnapshotID) (*Snapshot, error) {
	snap, ok := t.snapshots.Get(id)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

// SnapshotByName retrieves a snapshot by name.
func (t *Tracker) SnapshotByName(name string) (*Snapshot, error) {
	snap, ok := t.snapshots.GetByName(name)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return snap, nil
}

// DeleteSnapshot removes a snapshot.
func (t *Tracker) DeleteSnapshot(id SnapshotID) {
	t.snapshots.Delete(id)
}

// Snapshots returns all snapshots, oldest first.
func (t *Tracker) Snapshots() []*Snapshot {
	return t.snapshots.List()
}

// ChangesSinceSnapshot returns the logged changes made after the snapshot.
func (t *Tracker) ChangesSinceSnapshot(id SnapshotID) ([]Change, error) {
	snap, err := t.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return t.ChangesSince(snap.Version), nil
}

// DiffSinceSnapshot diffs the snapshot text against current.
func (t *Tracker) DiffSinceSnapshot(id SnapshotID, current string) (DiffResult, error) {
	snap, err := t.Snapshot(id)
	if err != nil {
		return DiffResult{}, err
	}
	return Diff(snap.Text(), current), nil
}

// DiffBetweenSnapshots diffs two snapshots.
func (t *Tracker) DiffBetweenSnapshots(from, to SnapshotID) (DiffResult, error) {
	a, err := t.Snapshot(from)
	if err != nil {
		return DiffResult{}, err
	}
	b, err := t.Snapshot(to)
	if err != nil {
		return DiffResult{}, err
	}
	return Diff(a.Text(), b.Text()), nil
}

// Clear drops all changes and snapshots.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.head = 0
	t.count = 0
	t.evicted = 0
	t.mu.Unlock()
	t.snapshots.Clear()
}
