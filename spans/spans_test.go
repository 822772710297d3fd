package spans_test

import (
	"testing"

	"github.com/npillmayer/mtree"
	"github.com/npillmayer/mtree/spans"
	"github.com/stretchr/testify/require"
)

func TestBuilderAndMetrics(t *testing.T) {
	b, err := spans.NewBuilder(spans.DefaultConfig())
	require.NoError(t, err)

	b.AddGap(2)
	b.AddSpan(5, 1) // [2,7) kind 1
	b.AddGap(1)
	b.AddSpan(3, 2) // [8,11) kind 2

	tree := b.Build()
	require.Equal(t, 11, tree.Len())
	require.Equal(t, 2, tree.Measure(spans.SpanMetric{}))
	require.True(t, tree.GetInfo().HasKind(1))
	require.True(t, tree.GetInfo().HasKind(2))
	require.False(t, tree.GetInfo().HasKind(3))

	cur := mtree.NewCursor[*spans.Leaf](tree)
	pos, ok := cur.Next(spans.SpanMetric{})
	require.True(t, ok)
	require.Equal(t, 2, pos)

	pos, ok = cur.Next(spans.SpanMetric{})
	require.True(t, ok)
	require.Equal(t, 8, pos)

	_, ok = cur.Next(spans.SpanMetric{})
	require.False(t, ok)
}

func TestExtractClipsStraddlingSpan(t *testing.T) {
	b, err := spans.NewBuilder(spans.DefaultConfig())
	require.NoError(t, err)
	b.AddSpan(10, 1) // [0,10)
	tree := b.Build()

	sub := tree.Extract(mtree.Interval{Start: 3, End: 7})
	got := sub.GetInfo()
	require.Equal(t, 1, got.Count())
	require.Equal(t, []spans.Span{{Start: 0, End: 4, Kind: 1}}, sub.LeafValue().Spans())
}
