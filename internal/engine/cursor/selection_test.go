package cursor

import (
	"testing"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSelectionBounds(t *testing.T) {
	s := Selection{Anchor: 8, Head: 3}
	assert.Equal(t, 3, s.From())
	assert.Equal(t, 8, s.To())
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, Backward, s.Orientation())
	assert.Equal(t, Forward, s.Flip().Orientation())
	assert.Equal(t, Selection{Anchor: 3, Head: 8}, s.WithOrientation(Forward))
	assert.Equal(t, s, s.WithOrientation(Backward))
	assert.True(t, Point(4).IsEmpty())
	assert.Equal(t, "Selection(8<-3)", s.String())
	assert.Equal(t, "Point(4)", Point(4).String())
}

func TestSelectionExtend(t *testing.T) {
	fwd := Selection{Anchor: 5, Head: 10}
	assert.Equal(t, Selection{Anchor: 2, Head: 12}, fwd.Extend(2, 12))
	assert.Equal(t, Selection{Anchor: 5, Head: 10}, fwd.Extend(6, 8))

	back := Selection{Anchor: 10, Head: 5}
	assert.Equal(t, Selection{Anchor: 12, Head: 2}, back.Extend(2, 12))
}

func TestSelectionOverlaps(t *testing.T) {
	tests := []struct {
		a, b Selection
		want bool
	}{
		{Selection{0, 5}, Selection{3, 8}, true},
		{Selection{0, 5}, Selection{5, 8}, false},
		{Point(3), Point(3), true},
		{Point(3), Point(4), false},
		{Point(3), Selection{3, 6}, true},
		{Point(4), Selection{3, 6}, true},
		{Point(6), Selection{3, 6}, false},
		{Selection{9, 2}, Selection{4, 5}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Overlaps(tt.b), "%v overlaps %v", tt.a, tt.b)
	}
}

func TestSelectionContains(t *testing.T) {
	s := Selection{Anchor: 2, Head: 6}
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
	assert.True(t, s.ContainsRange(Selection{Anchor: 5, Head: 3}))
	assert.False(t, s.ContainsRange(Selection{Anchor: 1, Head: 3}))
}

func TestSelectionMergeOrientation(t *testing.T) {
	back1 := Selection{Anchor: 5, Head: 0}
	back2 := Selection{Anchor: 9, Head: 3}
	fwd := Selection{Anchor: 3, Head: 9}

	assert.Equal(t, Selection{Anchor: 9, Head: 0}, back1.Merge(back2))
	assert.Equal(t, Selection{Anchor: 0, Head: 9}, back1.Merge(fwd))
	assert.Equal(t, Selection{Anchor: 0, Head: 9}, fwd.Merge(back1))
}

func TestNewSelection(t *testing.T) {
	buf := buffer.NewString("a\U0001F600b")

	sel, err := NewSelection(buf, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, sel.Len())

	_, err = NewSelection(buf, 0, 3)
	assert.ErrorIs(t, err, buffer.ErrNotGraphemeBoundary)

	_, err = NewSelection(buf, 0, 7)
	assert.ErrorIs(t, err, buffer.ErrOffsetOutOfRange)
}

func TestBlockCursor(t *testing.T) {
	buf := buffer.NewString("a\U0001F600b")

	off, err := Selection{Anchor: 0, Head: 5}.BlockCursor(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, off)

	off, err = Selection{Anchor: 5, Head: 1}.BlockCursor(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, off)

	off, err = Point(5).BlockCursor(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, off)
}

func TestSelectionTransform(t *testing.T) {
	insert := buffer.InsertDelta(5, 3)

	assert.Equal(t, Point(8), Point(5).Transform(insert, buffer.DriftInside))
	assert.Equal(t, Point(4), Point(4).Transform(insert, buffer.DriftInside))

	s := Selection{Anchor: 10, Head: 5}
	assert.Equal(t, Selection{Anchor: 13, Head: 5}, s.Transform(insert, buffer.DriftInside))
	assert.Equal(t, Selection{Anchor: 13, Head: 8}, s.Transform(insert, buffer.DriftOutside))

	del := buffer.DeleteDelta(2, 12)
	assert.Equal(t, Point(2), Selection{Anchor: 5, Head: 10}.Transform(del, buffer.DriftInside))
}

func genSelection(t *rapid.T, label string) Selection {
	return Selection{
		Anchor: rapid.IntRange(0, 50).Draw(t, label+"Anchor"),
		Head:   rapid.IntRange(0, 50).Draw(t, label+"Head"),
	}
}

func TestSelectionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genSelection(t, "a")
		b := genSelection(t, "b")

		if a.Overlaps(b) != b.Overlaps(a) {
			t.Fatalf("overlap not symmetric for %v and %v", a, b)
		}
		m := a.Merge(b)
		if !m.ContainsRange(a) || !m.ContainsRange(b) {
			t.Fatalf("merge %v does not contain %v and %v", m, a, b)
		}
		if m.Orientation() == Backward && (a.Orientation() != Backward || b.Orientation() != Backward) {
			t.Fatalf("merge %v backward without both inputs backward", m)
		}
		if a.Flip().Flip() != a {
			t.Fatalf("double flip changed %v", a)
		}
	})
}
