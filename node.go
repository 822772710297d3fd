package mtree

import "github.com/npillmayer/mtree/internal/diag"

var trace = diag.Trace("mtree")

// Node is an immutable, persistent tree node: either a leaf or an internal
// node carrying a vector of children, all at the same height. Node is the
// sole public handle callers pass across package boundaries (a "snapshot").
//
// Clone is O(1): since a Node is never mutated after construction, cloning
// it is simply handing out the same pointer (Go's garbage collector keeps
// the referenced storage alive for as long as any clone is reachable, the
// same role reference counting plays in spec.md §5).
type Node[L Leaf[L, I], I any] struct {
	cfg      *Config[I]
	isLeaf   bool
	leaf     L
	height   int
	lenBase  int
	info     I
	children []*Node[L, I]
}

// NewEmpty returns a zero-length tree under the given configuration.
func NewEmpty[L Leaf[L, I], I any](cfg Config[I]) (*Node[L, I], error) {
	validated, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	var zero L
	return &Node[L, I]{cfg: &validated, isLeaf: true, leaf: zero, info: validated.Monoid.Zero()}, nil
}

// FromLeaf builds a single-leaf tree of height 0 from leaf. O(1).
func FromLeaf[L Leaf[L, I], I any](cfg Config[I], leaf L) (*Node[L, I], error) {
	validated, err := NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return newLeafNode(&validated, leaf), nil
}

func newLeafNode[L Leaf[L, I], I any](cfg *Config[I], leaf L) *Node[L, I] {
	return &Node[L, I]{
		cfg:     cfg,
		isLeaf:  true,
		leaf:    leaf,
		height:  0,
		lenBase: leaf.Len(),
		info:    leaf.ComputeInfo(),
	}
}

func newInternalNode[L Leaf[L, I], I any](cfg *Config[I], children []*Node[L, I]) *Node[L, I] {
	assert(len(children) > 0, "newInternalNode called with no children")
	n := &Node[L, I]{
		cfg:      cfg,
		isLeaf:   false,
		height:   children[0].height + 1,
		children: children,
	}
	n.recomputeSummary()
	return n
}

func (n *Node[L, I]) recomputeSummary() {
	total := 0
	info := n.cfg.Monoid.Zero()
	for _, c := range n.children {
		total += c.lenBase
		info = n.cfg.Monoid.Accumulate(info, c.info)
	}
	n.lenBase = total
	n.info = info
}

// Len returns the node's length in base units. O(1).
func (n *Node[L, I]) Len() int {
	if n == nil {
		return 0
	}
	return n.lenBase
}

// IsEmpty reports whether the node has zero length.
func (n *Node[L, I]) IsEmpty() bool {
	return n == nil || n.lenBase == 0
}

// Height returns the node's height; 0 means a leaf (or empty) node.
func (n *Node[L, I]) Height() int {
	if n == nil {
		return 0
	}
	return n.height
}

// GetInfo returns the node's aggregated info. O(1).
func (n *Node[L, I]) GetInfo() I {
	return n.info
}

// Measure returns the total count in m's units for this subtree. O(1).
func (n *Node[L, I]) Measure(m Metric[L, I]) int {
	return m.Measure(n.info, n.lenBase)
}

// IsLeaf reports whether n is a single leaf node (height 0).
func (n *Node[L, I]) IsLeaf() bool {
	return n == nil || n.isLeaf
}

// Clone returns n itself: Nodes are immutable once built, so handing out
// the same pointer is observably identical to a deep copy and is O(1).
func (n *Node[L, I]) Clone() *Node[L, I] {
	return n
}

// Children returns n's children, or nil for a leaf (or empty) node. The
// returned slice must not be modified; it aliases n's own storage.
func (n *Node[L, I]) Children() []*Node[L, I] {
	if n == nil || n.isLeaf {
		return nil
	}
	return n.children
}

// LeafValue returns the payload of a leaf node. Meaningful only when
// IsLeaf() is true; an internal node returns the zero value of L.
func (n *Node[L, I]) LeafValue() L {
	if n == nil {
		var zero L
		return zero
	}
	return n.leaf
}

func cloneChildren[L Leaf[L, I], I any](children []*Node[L, I]) []*Node[L, I] {
	out := make([]*Node[L, I], len(children))
	copy(out, children)
	return out
}
