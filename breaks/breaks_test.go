package breaks_test

import (
	"testing"

	"github.com/npillmayer/mtree"
	"github.com/npillmayer/mtree/breaks"
	"github.com/stretchr/testify/require"
)

func TestRemoveLargestLine(t *testing.T) {
	bb, err := breaks.NewBreakBuilder(breaks.DefaultConfig())
	require.NoError(t, err)
	bb.AddBreak(4, 4)
	bb.AddBreak(4, 10)
	bb.AddBreak(4, 2)
	tree := bb.Build()

	require.Equal(t, 12, tree.Len())
	require.Equal(t, 10, breaks.MaxWidth(tree))

	empty, err := mtree.NewEmpty[*breaks.Leaf](breaks.DefaultConfig())
	require.NoError(t, err)
	tree = tree.Edit(mtree.Interval{Start: 4, End: 8}, empty)

	require.Equal(t, 8, tree.Len())
	require.Equal(t, 4, breaks.MaxWidth(tree))
}

func TestNewNoBreak(t *testing.T) {
	tree, err := breaks.NewNoBreak(breaks.DefaultConfig(), 40)
	require.NoError(t, err)
	require.Equal(t, 40, tree.Len())
	require.Equal(t, 0, breaks.MaxWidth(tree))
	require.Equal(t, 0, tree.Measure(breaks.BreaksMetric{}))
}

func TestBreaksMetricRoundTrip(t *testing.T) {
	bb, err := breaks.NewBreakBuilder(breaks.DefaultConfig())
	require.NoError(t, err)
	bb.AddBreak(5, 1)
	bb.AddNoBreak(3)
	bb.AddBreak(5, 9)
	bb.AddBreak(5, 3)
	tree := bb.Build()

	require.Equal(t, 3, tree.Measure(breaks.BreaksMetric{}))
	require.Equal(t, tree.Len(), tree.Measure(breaks.BreaksBaseMetric{}))

	cur := mtree.NewCursor[*breaks.Leaf](tree)
	pos, ok := cur.Next(breaks.BreaksMetric{})
	require.True(t, ok)
	require.Equal(t, 5, pos)
	require.True(t, cur.IsBoundary(breaks.BreaksMetric{}))

	pos, ok = cur.Next(breaks.BreaksMetric{})
	require.True(t, ok)
	require.Equal(t, 13, pos)

	pos, ok = cur.Prev(breaks.BreaksMetric{})
	require.True(t, ok)
	require.Equal(t, 5, pos)

	_, ok = cur.Prev(breaks.BreaksMetric{})
	require.False(t, ok)
}

func TestLargeBuilderSplitsLeaves(t *testing.T) {
	bb, err := breaks.NewBreakBuilder(breaks.DefaultConfig())
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		bb.AddBreak(2, i%7)
	}
	tree := bb.Build()

	require.Equal(t, 500, tree.Measure(breaks.BreaksMetric{}))
	require.Equal(t, 1000, tree.Len())
	require.Equal(t, 6, breaks.MaxWidth(tree))
	require.Greater(t, tree.Height(), 0)
}
