package mtree

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

// testLeaf is a minimal byte-slice leaf used only to exercise the tree
// mechanics independent of any concrete exemplar package.
type testLeaf struct {
	s []byte
}

const (
	testMinLeaf = 4
	testMaxLeaf = 8
)

func (l *testLeaf) Len() int        { return len(l.s) }
func (l *testLeaf) IsOkChild() bool { return len(l.s) >= testMinLeaf }

func (l *testLeaf) PushMaybeSplit(other *testLeaf, iv Interval) (*testLeaf, bool) {
	l.s = append(l.s, other.s[iv.Start:iv.End]...)
	if len(l.s) <= testMaxLeaf {
		return nil, false
	}
	mid := len(l.s) / 2
	tail := append([]byte(nil), l.s[mid:]...)
	l.s = l.s[:mid]
	return &testLeaf{s: tail}, true
}

func (l *testLeaf) Clone() *testLeaf { return &testLeaf{s: append([]byte(nil), l.s...)} }
func (l *testLeaf) Empty() *testLeaf { return &testLeaf{} }

type testInfo struct {
	Leaves int
	Total  int
}

func (l *testLeaf) ComputeInfo() testInfo { return testInfo{Leaves: 1, Total: len(l.s)} }

type testMonoid struct{}

func (testMonoid) Zero() testInfo { return testInfo{} }
func (testMonoid) Accumulate(a, b testInfo) testInfo {
	return testInfo{Leaves: a.Leaves + b.Leaves, Total: a.Total + b.Total}
}

func testConfig() Config[testInfo] {
	return Config[testInfo]{Monoid: testMonoid{}, MinChildren: 2, MaxChildren: 4}
}

// byteMetric treats every base offset as its own unit: a fully fragmentable
// identity metric, used to drive the cursor one step at a time.
type byteMetric struct{}

func (byteMetric) Measure(_ testInfo, baseLen int) int        { return baseLen }
func (byteMetric) ToBaseUnits(_ *testLeaf, in int) int         { return in }
func (byteMetric) FromBaseUnits(_ *testLeaf, in int) int       { return in }
func (byteMetric) IsBoundary(_ *testLeaf, _ int) bool          { return true }
func (byteMetric) CanFragment() bool                          { return true }
func (byteMetric) Prev(l *testLeaf, offset int) (int, bool) {
	if offset <= 0 {
		return 0, false
	}
	return offset - 1, true
}
func (byteMetric) Next(l *testLeaf, offset int) (int, bool) {
	if offset >= l.Len() {
		return 0, false
	}
	return offset + 1, true
}

// leafEdgeMetric only has boundaries at a leaf's own edges: non-fragmentable.
type leafEdgeMetric struct{}

func (leafEdgeMetric) Measure(info testInfo, _ int) int { return info.Leaves }
func (leafEdgeMetric) ToBaseUnits(l *testLeaf, in int) int {
	if in <= 0 {
		return 0
	}
	return l.Len()
}
func (leafEdgeMetric) FromBaseUnits(l *testLeaf, in int) int {
	if in >= l.Len() && l.Len() > 0 {
		return 1
	}
	return 0
}
func (leafEdgeMetric) IsBoundary(l *testLeaf, offset int) bool {
	return offset == 0 || offset == l.Len()
}
func (leafEdgeMetric) CanFragment() bool { return false }
func (leafEdgeMetric) Prev(l *testLeaf, offset int) (int, bool) {
	if offset > l.Len() {
		return l.Len(), true
	}
	if offset > 0 {
		return 0, true
	}
	return 0, false
}
func (leafEdgeMetric) Next(l *testLeaf, offset int) (int, bool) {
	if offset < l.Len() {
		return l.Len(), true
	}
	return 0, false
}

// collect walks the tree depth-first and concatenates every leaf's bytes,
// giving the reconstructed content for round-trip comparisons.
func collect(n *Node[*testLeaf, testInfo]) []byte {
	if n == nil || n.IsEmpty() {
		return nil
	}
	if n.isLeaf {
		return append([]byte(nil), n.leaf.s...)
	}
	var out []byte
	for _, c := range n.children {
		out = append(out, collect(c)...)
	}
	return out
}

// buildFromBytes chunks data into leaves of at most testMaxLeaf bytes and
// assembles them through a TreeBuilder, the way a parser would stream
// content in.
func buildFromBytes(data []byte) *Node[*testLeaf, testInfo] {
	cfg := testConfig()
	b := NewTreeBuilder[*testLeaf, testInfo](&cfg)
	for i := 0; i < len(data); i += testMaxLeaf {
		end := i + testMaxLeaf
		if end > len(data) {
			end = len(data)
		}
		chunk := append([]byte(nil), data[i:end]...)
		b.Push(newLeafNode(&cfg, &testLeaf{s: chunk}))
	}
	return b.Build()
}

func TestBuilderAssemblesBalancedTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("0123456701234567"), 20)
	tree := buildFromBytes(data)

	require.Equal(t, len(data), tree.Len())
	require.Equal(t, len(data), tree.GetInfo().Total)
	require.Equal(t, data, collect(tree))
	require.Greater(t, tree.Height(), 0)
}

func TestConcatPreservesLengthAndOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	left := buildFromBytes([]byte("abcdefghijklmnop"))
	right := buildFromBytes([]byte("qrstuvwxyz012345"))
	joined := left.Concat(right)

	require.Equal(t, left.Len()+right.Len(), joined.Len())
	require.Equal(t, append(collect(left), collect(right)...), collect(joined))
}

func TestSplitAtAndConcatRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 10)
	tree := buildFromBytes(data)
	cfg := testConfig()

	for _, idx := range []int{0, 1, 17, 40, len(data) - 1, len(data)} {
		left, right := splitAt(&cfg, tree, idx)
		require.Equal(t, idx, left.Len())
		require.Equal(t, len(data)-idx, right.Len())
		require.Equal(t, data, append(collect(left), collect(right)...))
	}
}

func TestEditReplacesIntervalAndLeavesOriginalIntact(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 10)
	original := buildFromBytes(data)
	replacement := buildFromBytes([]byte("XYZ"))

	iv := Interval{Start: 20, End: 28}
	edited := original.Edit(iv, replacement)

	want := append(append(append([]byte(nil), data[:iv.Start]...), []byte("XYZ")...), data[iv.End:]...)
	require.Equal(t, want, collect(edited))
	require.Equal(t, len(want), edited.Len())

	// the original tree must remain untouched (component F, snapshot
	// immutability)
	require.Equal(t, data, collect(original))
	require.Equal(t, len(data), original.Len())
}

func TestExtractReturnsSubrange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 10)
	tree := buildFromBytes(data)

	sub := tree.Extract(Interval{Start: 10, End: 30})
	require.Equal(t, data[10:30], collect(sub))
	require.Equal(t, 20, sub.Len())
}

func TestTryExtractReportsOutOfRangeAsError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	tree := buildFromBytes([]byte("abcdefgh"))
	_, err := tree.TryExtract(Interval{Start: 0, End: 100})
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	_, err = tree.TryExtract(Interval{Start: 5, End: 2})
	require.ErrorIs(t, err, ErrInvalidInterval)

	sub, err := tree.TryExtract(Interval{Start: 2, End: 5})
	require.NoError(t, err)
	require.Equal(t, []byte("cde"), collect(sub))
}

func TestCursorByteMetricVisitsEveryOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 6)
	tree := buildFromBytes(data)
	cur := NewCursor[*testLeaf, testInfo](tree)

	var visited []int
	pos := 0
	visited = append(visited, pos)
	for {
		next, ok := cur.Next(byteMetric{})
		if !ok {
			break
		}
		require.Greater(t, next, pos)
		pos = next
		visited = append(visited, pos)
	}
	require.Equal(t, tree.Len(), pos)

	for i := len(visited) - 2; i >= 0; i-- {
		prev, ok := cur.Prev(byteMetric{})
		require.True(t, ok)
		require.Equal(t, visited[i], prev)
	}
	_, ok := cur.Prev(byteMetric{})
	require.False(t, ok)
}

func TestCursorNonFragmentableMetricStopsAtLeafEdges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 6)
	tree := buildFromBytes(data)
	cur := NewCursor[*testLeaf, testInfo](tree)

	pos, ok := cur.Next(leafEdgeMetric{})
	require.True(t, ok)
	require.True(t, cur.IsBoundary(leafEdgeMetric{}))
	require.Zero(t, pos%testMaxLeaf)
}

func TestCursorSetAndGetLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 6)
	tree := buildFromBytes(data)
	cur := NewCursor[*testLeaf, testInfo](tree)

	cur.Set(12)
	leaf, off := cur.GetLeaf()
	require.Equal(t, byte(data[12]), leaf.s[off])
	require.Equal(t, 12, cur.BasePos())
}

func TestCursorTotalPosMatchesBasePos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 6)
	tree := buildFromBytes(data)
	cur := NewCursor[*testLeaf, testInfo](tree)

	for _, pos := range []int{0, 1, 12, 40, len(data)} {
		cur.Set(pos)
		require.Equal(t, pos, cur.TotalPos(byteMetric{}))
	}
}

func TestCursorPeekNextAndPrevLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtree")
	defer teardown()

	data := bytes.Repeat([]byte("abcdefgh"), 6)
	tree := buildFromBytes(data)
	cur := NewCursor[*testLeaf, testInfo](tree)

	cur.Set(0)
	_, ok := cur.PeekPrevLeaf()
	require.False(t, ok)

	next, ok := cur.PeekNextLeaf()
	require.True(t, ok)
	require.Equal(t, data[testMaxLeaf:testMaxLeaf*2], next.s)

	cur.Set(testMaxLeaf)
	prev, ok := cur.PeekPrevLeaf()
	require.True(t, ok)
	require.Equal(t, data[:testMaxLeaf], prev.s)

	cur.Set(len(data) - 1)
	_, ok = cur.PeekNextLeaf()
	require.False(t, ok)
}
