// Package dump prints a Node[L,I] tree for debugging, independent of the
// concrete leaf type: an indented, colorized outline for quick inspection
// at a terminal, and a Graphviz DOT export for rendering the full shape.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/mtree"
)

var (
	internalColor = color.New(color.FgCyan)
	leafColor     = color.New(color.FgGreen)
)

// Tree writes an indented outline of root to w, one line per node.
// describe renders a leaf's payload as a short label (e.g. its content, or
// a summary of it); pass nil to omit leaf labels.
func Tree[L mtree.Leaf[L, I], I any](w io.Writer, root *mtree.Node[L, I], describe func(L) string) {
	writeNode(w, root, 0, describe)
}

func writeNode[L mtree.Leaf[L, I], I any](w io.Writer, n *mtree.Node[L, I], depth int, describe func(L) string) {
	if n == nil || n.IsEmpty() {
		return
	}
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		label := ""
		if describe != nil {
			label = fmt.Sprintf(" %q", describe(n.LeafValue()))
		}
		leafColor.Fprintf(w, "%s- leaf len=%d%s\n", indent, n.Len(), label)
		return
	}
	internalColor.Fprintf(w, "%s+ node height=%d len=%d children=%d\n", indent, n.Height(), n.Len(), len(n.Children()))
	for _, c := range n.Children() {
		writeNode(w, c, depth+1, describe)
	}
}

// ids assigns small, stable integer labels to nodes for DOT output, the
// way cordNode identities were tracked in the teacher's Cord2Dot.
type ids[L mtree.Leaf[L, I], I any] struct {
	table map[*mtree.Node[L, I]]int
	next  int
}

func newIDs[L mtree.Leaf[L, I], I any]() *ids[L, I] {
	return &ids[L, I]{table: make(map[*mtree.Node[L, I]]int), next: 1}
}

func (t *ids[L, I]) alloc(n *mtree.Node[L, I]) int {
	if id, ok := t.table[n]; ok {
		return id
	}
	id := t.next
	t.table[n] = id
	t.next++
	return id
}

// Dot writes root's structure to w in Graphviz DOT format. describe
// renders a leaf's payload as a short label; pass nil to label leaves by
// length only.
func Dot[L mtree.Leaf[L, I], I any](w io.Writer, root *mtree.Node[L, I], describe func(L) string) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	t := newIDs[L, I]()
	writeDot(w, root, t, describe)
	io.WriteString(w, "}\n")
}

func writeDot[L mtree.Leaf[L, I], I any](w io.Writer, n *mtree.Node[L, I], t *ids[L, I], describe func(L) string) int {
	id := t.alloc(n)
	if n.IsLeaf() {
		label := fmt.Sprintf("len=%d", n.Len())
		if describe != nil {
			label = fmt.Sprintf("%s\\n%q", label, describe(n.LeafValue()))
		}
		fmt.Fprintf(w, "\t\"%d\" [label=\"%s\",style=filled,shape=box,fillcolor=\"#a3d7e4\"];\n", id, label)
		return id
	}
	fmt.Fprintf(w, "\t\"%d\" [label=\"h=%d len=%d\",style=filled,shape=circle,fillcolor=\"#cce5ff\"];\n", id, n.Height(), n.Len())
	for _, c := range n.Children() {
		childID := writeDot(w, c, t, describe)
		fmt.Fprintf(w, "\t\"%d\" -> \"%d\";\n", id, childID)
	}
	return id
}
