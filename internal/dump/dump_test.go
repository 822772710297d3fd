package dump_test

import (
	"bytes"
	"testing"

	"github.com/npillmayer/mtree/breaks"
	"github.com/npillmayer/mtree/internal/dump"
	"github.com/stretchr/testify/require"
)

func TestTreeAndDotProduceNonEmptyOutput(t *testing.T) {
	bb, err := breaks.NewBreakBuilder(breaks.DefaultConfig())
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		bb.AddBreak(3, i%5)
	}
	tree := bb.Build()

	var outline bytes.Buffer
	dump.Tree(&outline, tree, nil)
	require.NotEmpty(t, outline.String())
	require.Contains(t, outline.String(), "leaf")

	var dot bytes.Buffer
	dump.Dot(&dot, tree, nil)
	require.Contains(t, dot.String(), "strict digraph")
	require.Contains(t, dot.String(), "->")
}
