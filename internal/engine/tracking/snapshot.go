package tracking

import (
	"sort"
	"sync"
	"time"
)

// SnapshotID identifies a snapshot within its manager.
type SnapshotID uint64

// Snapshot is a named checkpoint of document text.
type Snapshot struct {
	ID   SnapshotID
	Name string

	Timestamp time.Time

	// Version is the buffer version the text belongs to.
	Version uint64

	text string
}

// Text returns the snapshot text.
func (s *Snapshot) Text() string {
	return s.text
}

// Len returns the byte length of the snapshot text.
func (s *Snapshot) Len() int {
	return len(s.text)
}

// Age returns how long ago the snapshot was taken.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Timestamp)
}

// SnapshotManager manages named snapshots.
// All operations are thread-safe.
type SnapshotManager struct {
	mu        sync.RWMutex
	nextID    SnapshotID
	snapshots map[SnapshotID]*Snapshot
	byName    map[string]*Snapshot
}

// NewSnapshotManager creates an empty manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[SnapshotID]*Snapshot),
		byName:    make(map[string]*Snapshot),
	}
}

// Create stores a snapshot of text. A snapshot with the same name is
// replaced.
func (sm *SnapshotManager) Create(name, text string, version uint64) SnapshotID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}

	sm.nextID++
	snap := &Snapshot{
		ID:        sm.nextID,
		Name:      name,
		Timestamp: time.Now(),
		Version:   version,
		text:      text,
	}
	sm.snapshots[snap.ID] = snap
	if name != "" {
		sm.byName[name] = snap
	}
	return snap.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id SnapshotID) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	return snap, ok
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	return snap, ok
}

// Delete removes a snapshot by ID.
func (sm *SnapshotManager) Delete(id SnapshotID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if snap, ok := sm.snapshots[id]; ok {
		if snap.Name != "" {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, id)
	}
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[SnapshotID]*Snapshot)
	sm.byName = make(map[string]*Snapshot)
}

// PruneKeepN removes the oldest snapshots so at most n remain and returns
// how many were removed.
func (sm *SnapshotManager) PruneKeepN(n int) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.snapshots) <= n {
		return 0
	}
	ids := make([]SnapshotID, 0, len(sm.snapshots))
	for id := range sm.snapshots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	removed := 0
	for _, id := range ids[n:] {
		snap := sm.snapshots[id]
		if snap.Name != "" {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, id)
		removed++
	}
	return removed
}
