package cursor

import (
	"testing"

	"github.com/dshills/bluebook/internal/engine/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSetMerges(t *testing.T) {
	ss := NewSelectionSet(Point(20))
	ss.Add(Selection{Anchor: 0, Head: 5})
	ss.Add(Selection{Anchor: 10, Head: 15})

	require.Equal(t, 3, ss.Len())
	assert.Equal(t, Selection{Anchor: 10, Head: 15}, ss.Primary())
	assert.Equal(t, 1, ss.PrimaryIndex())

	// Overlaps the first two; the merged selection stays primary.
	ss.Add(Selection{Anchor: 3, Head: 12})
	assert.Equal(t, []Selection{{Anchor: 0, Head: 15}, Point(20)}, ss.All())
	assert.Equal(t, Selection{Anchor: 0, Head: 15}, ss.Primary())
}

func TestSelectionSetPrimarySurvivesSort(t *testing.T) {
	ss := NewSelectionSet(Point(30))
	ss.Add(Point(10))
	ss.SetPrimary(Point(40))

	assert.Equal(t, []Selection{Point(30), Point(40)}, ss.All())
	assert.Equal(t, Point(40), ss.Primary())

	ss.Collapse()
	assert.Equal(t, 1, ss.Len())
	assert.Equal(t, Point(40), ss.Primary())
}

func TestSelectionSetApplyDelta(t *testing.T) {
	ss := NewSelectionSet(Point(2))
	ss.Add(Selection{Anchor: 5, Head: 9})

	ss.ApplyDelta(buffer.InsertDelta(0, 4), buffer.DriftInside)
	assert.Equal(t, []Selection{Point(6), {Anchor: 9, Head: 13}}, ss.All())

	// Deleting everything between them collapses both onto one point.
	ss.ApplyDelta(buffer.DeleteDelta(6, 13), buffer.DriftInside)
	assert.Equal(t, []Selection{Point(6)}, ss.All())
}

func TestMoveHorizontal(t *testing.T) {
	buf := buffer.NewString("a\U0001F600b")

	sel, n, err := MoveHorizontal(buf, Point(0), 2, Forward, Move)
	require.NoError(t, err)
	assert.Equal(t, Point(5), sel)
	assert.Equal(t, 2, n)

	sel, n, err = MoveHorizontal(buf, Point(0), 10, Forward, Move)
	require.NoError(t, err)
	assert.Equal(t, Point(6), sel)
	assert.Equal(t, 3, n)

	sel, n, err = MoveHorizontal(buf, Point(5), 1, Backward, Extend)
	require.NoError(t, err)
	assert.Equal(t, Selection{Anchor: 5, Head: 1}, sel)
	assert.Equal(t, 1, n)

	sel, n, err = MoveHorizontal(buf, Point(0), 1, Backward, Move)
	require.NoError(t, err)
	assert.Equal(t, Point(0), sel)
	assert.Zero(t, n)
}
