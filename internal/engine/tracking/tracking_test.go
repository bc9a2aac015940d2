package tracking

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/bluebook/internal/engine/buffer"
)

func insert(version uint64, off int, text string) Change {
	return NewChange(version, buffer.InsertDelta(off, 0), "", text)
}

func TestChangeTypes(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		want   ChangeType
		shift  int
	}{
		{"insert", insert(1, 10, "hello"), ChangeInsert, 5},
		{"delete", NewChange(2, buffer.DeleteDelta(10, 15), "hello", ""), ChangeDelete, -5},
		{"replace", NewChange(3, buffer.DeleteDelta(10, 15), "hello", "world!"), ChangeReplace, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.change.Type(); got != tt.want {
				t.Errorf("Type() = %v, want %v", got, tt.want)
			}
			if got := tt.change.Shift(); got != tt.shift {
				t.Errorf("Shift() = %d, want %d", got, tt.shift)
			}
			if got := tt.change.Delta.Shift(); got != tt.shift {
				t.Errorf("Delta.Shift() = %d, want %d", got, tt.shift)
			}
		})
	}
}

func TestChangeString(t *testing.T) {
	c := insert(4, 2, "a long piece of inserted text")
	got := c.String()
	if !strings.HasPrefix(got, "v4 insert ") || !strings.Contains(got, "...") {
		t.Errorf("String() = %q", got)
	}
}

func TestChangeSetSummary(t *testing.T) {
	cs := NewChangeSet(0)
	if cs.Summary() != "no changes" {
		t.Errorf("empty summary = %q", cs.Summary())
	}
	cs.Add(insert(1, 0, "abc"))
	cs.Add(insert(2, 3, "defg"))
	cs.Add(NewChange(3, buffer.DeleteDelta(0, 3), "abc", ""))

	if cs.EndVersion != 3 {
		t.Errorf("EndVersion = %d, want 3", cs.EndVersion)
	}
	if cs.TotalShift() != 4 {
		t.Errorf("TotalShift() = %d, want 4", cs.TotalShift())
	}
	want := "2 inserts, 1 deletes (+7/-3 bytes)"
	if got := cs.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestTrackerChangesSince(t *testing.T) {
	tr := NewTracker()
	for v := uint64(1); v <= 5; v++ {
		tr.Record(insert(v, 0, "x"))
	}

	if got := len(tr.ChangesSince(0)); got != 5 {
		t.Fatalf("ChangesSince(0) len = %d, want 5", got)
	}
	since := tr.ChangesSince(3)
	if len(since) != 2 || since[0].Version != 4 || since[1].Version != 5 {
		t.Errorf("ChangesSince(3) = %v", since)
	}
	between := tr.ChangesBetween(1, 3)
	if len(between) != 2 || between[0].Version != 2 {
		t.Errorf("ChangesBetween(1, 3) = %v", between)
	}
	if got := tr.ChangesSince(5); got != nil {
		t.Errorf("ChangesSince(5) = %v, want nil", got)
	}
}

func TestTrackerRingBuffer(t *testing.T) {
	tr := NewTracker(WithMaxChanges(3))
	for v := uint64(1); v <= 5; v++ {
		tr.Record(insert(v, 0, "x"))
	}

	if tr.ChangeCount() != 3 {
		t.Fatalf("ChangeCount() = %d, want 3", tr.ChangeCount())
	}
	all := tr.ChangesSince(0)
	if len(all) != 3 || all[0].Version != 3 || all[2].Version != 5 {
		t.Errorf("ChangesSince(0) = %v", all)
	}
	if tr.Complete(1) {
		t.Error("Complete(1) should be false after eviction")
	}
	if !tr.Complete(2) {
		t.Error("Complete(2) should be true")
	}

	latest := tr.LatestChanges(2)
	if len(latest) != 2 || latest[0].Version != 4 || latest[1].Version != 5 {
		t.Errorf("LatestChanges(2) = %v", latest)
	}
	if got := len(tr.LatestChanges(10)); got != 3 {
		t.Errorf("LatestChanges(10) len = %d, want 3", got)
	}
}

func TestTrackerSnapshots(t *testing.T) {
	tr := NewTracker()
	id := tr.CreateSnapshot("start", "one\ntwo\n", 0)
	tr.Record(insert(1, 4, "2\n"))

	snap, err := tr.SnapshotByName("start")
	if err != nil {
		t.Fatalf("SnapshotByName: %v", err)
	}
	if snap.ID != id || snap.Text() != "one\ntwo\n" || snap.Len() != 8 {
		t.Errorf("snapshot = %+v", snap)
	}

	changes, err := tr.ChangesSinceSnapshot(id)
	if err != nil || len(changes) != 1 {
		t.Errorf("ChangesSinceSnapshot = %v, %v", changes, err)
	}

	diff, err := tr.DiffSinceSnapshot(id, "one\n2\ntwo\n")
	if err != nil {
		t.Fatalf("DiffSinceSnapshot: %v", err)
	}
	if diff.InsertedLines() != 1 || diff.DeletedLines() != 0 {
		t.Errorf("diff = %s", diff)
	}

	// Same name replaces.
	id2 := tr.CreateSnapshot("start", "other", 1)
	if _, err := tr.Snapshot(id); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("old snapshot still present: %v", err)
	}
	if len(tr.Snapshots()) != 1 {
		t.Errorf("Snapshots() len = %d, want 1", len(tr.Snapshots()))
	}

	tr.DeleteSnapshot(id2)
	if _, err := tr.DiffSinceSnapshot(id2, ""); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("DiffSinceSnapshot after delete: %v", err)
	}
}

func TestSnapshotManagerPrune(t *testing.T) {
	sm := NewSnapshotManager()
	for _, name := range []string{"a", "b", "c", "d"} {
		sm.Create(name, name, 0)
	}
	if removed := sm.PruneKeepN(2); removed != 2 {
		t.Errorf("PruneKeepN(2) = %d, want 2", removed)
	}
	if _, ok := sm.GetByName("a"); ok {
		t.Error("oldest snapshot should be pruned")
	}
	if _, ok := sm.GetByName("d"); !ok {
		t.Error("newest snapshot should remain")
	}
	if sm.PruneKeepN(5) != 0 {
		t.Error("PruneKeepN above count should remove nothing")
	}
}

func TestDiff(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		d := Diff("same\ntext\n", "same\ntext\n")
		if d.HasChanges() {
			t.Errorf("unexpected changes: %s", d)
		}
	})

	t.Run("replace line", func(t *testing.T) {
		d := Diff("a\nb\nc\n", "a\nx\nc\n")
		if d.InsertedLines() != 1 || d.DeletedLines() != 1 {
			t.Fatalf("diff = %s", d)
		}
		for _, h := range d.Hunks {
			switch h.Type {
			case DiffDelete:
				if h.OldStart != 1 || h.Lines[0] != "b" {
					t.Errorf("delete hunk = %+v", h)
				}
			case DiffInsert:
				if h.NewStart != 1 || h.Lines[0] != "x" {
					t.Errorf("insert hunk = %+v", h)
				}
			}
		}
	})

	t.Run("from empty", func(t *testing.T) {
		d := Diff("", "one\r\ntwo")
		if d.InsertedLines() != 2 {
			t.Fatalf("diff = %s", d)
		}
		if got := d.String(); got != "+one\n+two\n" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestClear(t *testing.T) {
	tr := NewTracker(WithMaxChanges(1))
	tr.Record(insert(1, 0, "a"))
	tr.Record(insert(2, 0, "b"))
	tr.CreateSnapshot("s", "ab", 2)
	tr.Clear()

	if tr.ChangeCount() != 0 || len(tr.Snapshots()) != 0 {
		t.Error("Clear should drop everything")
	}
	if !tr.Complete(0) {
		t.Error("Complete(0) should be true after Clear")
	}
}
