package buffer

import (
	"testing"

	"github.com/google/uuid"
)

func TestSequenceTombstones(t *testing.T) {
	replica := uuid.MustParse("6f1c1c1e-4c8e-4b8e-9d7a-1a2b3c4d5e6f")
	st := NewSequenceStoreWithReplica("abc", replica)
	b := NewWithStore(st)

	if st.Replica() != replica {
		t.Errorf("replica = %v", st.Replica())
	}
	if st.Clock() != 3 {
		t.Errorf("clock = %d, want 3", st.Clock())
	}

	if _, err := b.ReplaceRange(1, 2, "XY"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "aXYc" {
		t.Errorf("got %q", b.String())
	}
	if st.Tombstones() != 1 {
		t.Errorf("tombstones = %d, want 1", st.Tombstones())
	}

	id, ok := st.IDAt(1)
	if !ok || id.Lamport != 4 || id.Replica != replica {
		t.Errorf("IDAt(1) = %v, %v", id, ok)
	}
	first, _ := st.IDAt(0)
	if !first.Less(id) {
		t.Error("older element should order first")
	}
	if _, ok := st.IDAt(99); ok {
		t.Error("IDAt past end should fail")
	}
}

func TestSequenceInsertAtStart(t *testing.T) {
	b := NewSequence("bc")
	if _, err := b.Write(0, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Write(3, "\U0001F600"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "abc\U0001F600" {
		t.Errorf("got %q", b.String())
	}
	if _, _, err := b.Drain(0, 3); err != nil {
		t.Fatal(err)
	}
	if b.String() != "\U0001F600" {
		t.Errorf("got %q", b.String())
	}
}

func TestIDHeadSentinel(t *testing.T) {
	if !(ID{}).IsZero() {
		t.Error("zero ID should be the head sentinel")
	}
}
