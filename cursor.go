package mtree

// frame is one step of a Cursor's path from the root down to its current
// leaf: the node at this level, which child was descended into (unused for
// the leaf frame, the last entry in the path), and the absolute base offset
// where this node's subtree begins.
type frame[L Leaf[L, I], I any] struct {
	node      *Node[L, I]
	childIdx  int
	baseStart int
}

// Cursor is a stateful, bidirectional navigator over a tree snapshot. It is
// bound to the root it was created from; using it after that tree has been
// edited produces undefined results (callers must not do this, per
// spec.md §3 "Lifecycles").
type Cursor[L Leaf[L, I], I any] struct {
	root      *Node[L, I]
	path      []frame[L, I]
	posInLeaf int
}

// NewCursor creates a cursor positioned at base offset 0 of root.
func NewCursor[L Leaf[L, I], I any](root *Node[L, I]) *Cursor[L, I] {
	c := &Cursor[L, I]{root: root}
	c.Set(0)
	return c
}

// Set re-descends from the root to place the cursor at the given base
// offset. O(log n).
func (c *Cursor[L, I]) Set(offset int) {
	assert(offset >= 0 && offset <= c.root.lenBase, "Cursor.Set: offset out of range")
	c.path = c.path[:0]
	c.descendTo(c.root, 0, offset)
}

func (c *Cursor[L, I]) descendTo(n *Node[L, I], base, offset int) {
	if n.isLeaf {
		c.path = append(c.path, frame[L, I]{node: n, baseStart: base})
		c.posInLeaf = offset - base
		return
	}
	childBase := base
	last := len(n.children) - 1
	for i, child := range n.children {
		end := childBase + child.lenBase
		if offset < end || i == last {
			c.path = append(c.path, frame[L, I]{node: n, childIdx: i, baseStart: base})
			c.descendTo(child, childBase, offset)
			return
		}
		childBase = end
	}
}

// BasePos returns the cursor's current position in base units.
func (c *Cursor[L, I]) BasePos() int {
	lf := c.path[len(c.path)-1]
	return lf.baseStart + c.posInLeaf
}

// GetLeaf returns the current leaf and the base-unit offset within it.
func (c *Cursor[L, I]) GetLeaf() (L, int) {
	lf := c.path[len(c.path)-1]
	return lf.node.leaf, c.posInLeaf
}

// IsBoundary reports whether the cursor currently sits on an m-boundary.
func (c *Cursor[L, I]) IsBoundary(m Metric[L, I]) bool {
	leaf, off := c.GetLeaf()
	if m.IsBoundary(leaf, off) {
		return true
	}
	// offset 0 of this leaf is also the end of the previous leaf
	if off == 0 {
		if prev, ok := c.PeekPrevLeaf(); ok {
			return m.IsBoundary(prev, prev.Len())
		}
	}
	return false
}

// TotalPos returns the cumulative m-measure from the start of the tree to
// the cursor's current position.
func (c *Cursor[L, I]) TotalPos(m Metric[L, I]) int {
	total := 0
	for i := 0; i < len(c.path)-1; i++ {
		fr := c.path[i]
		for ci := 0; ci < fr.childIdx; ci++ {
			child := fr.node.children[ci]
			total += m.Measure(child.info, child.lenBase)
		}
	}
	leaf, off := c.GetLeaf()
	total += m.FromBaseUnits(leaf, off)
	return total
}

// Next advances the cursor to the next m-boundary strictly after the
// current position, returning its base-unit position. It returns
// (0, false) and leaves the cursor unmoved if no further boundary exists.
//
// Algorithm (spec.md §4.E): try the metric's leaf-local Next first; failing
// that, ascend until an ancestor has a right sibling subtree whose
// m-measure is nonzero, then descend into the leftmost such subtree to find
// its first boundary.
func (c *Cursor[L, I]) Next(m Metric[L, I]) (int, bool) {
	leaf, off := c.GetLeaf()
	if m.CanFragment() {
		if next, ok := m.Next(leaf, off); ok {
			lf := c.path[len(c.path)-1]
			pos := lf.baseStart + next
			c.Set(pos)
			return pos, true
		}
	}
	limit := c.BasePos()
	for level := len(c.path) - 2; level >= 0; level-- {
		fr := c.path[level]
		parent := fr.node
		base := fr.baseStart
		for i := 0; i <= fr.childIdx; i++ {
			base += parent.children[i].lenBase
		}
		for ci := fr.childIdx + 1; ci < len(parent.children); ci++ {
			child := parent.children[ci]
			if m.Measure(child.info, child.lenBase) > 0 {
				if pos, ok := descendFirstBoundary(child, base, limit, m); ok {
					c.Set(pos)
					return pos, true
				}
			}
			base += child.lenBase
		}
	}
	return 0, false
}

// Prev is the mirror image of Next.
func (c *Cursor[L, I]) Prev(m Metric[L, I]) (int, bool) {
	leaf, off := c.GetLeaf()
	if m.CanFragment() {
		if prev, ok := m.Prev(leaf, off); ok {
			lf := c.path[len(c.path)-1]
			pos := lf.baseStart + prev
			c.Set(pos)
			return pos, true
		}
	}
	limit := c.BasePos()
	for level := len(c.path) - 2; level >= 0; level-- {
		fr := c.path[level]
		parent := fr.node
		base := fr.baseStart
		for i := 0; i < fr.childIdx; i++ {
			base += parent.children[i].lenBase
		}
		for ci := fr.childIdx - 1; ci >= 0; ci-- {
			child := parent.children[ci]
			base -= child.lenBase
			if m.Measure(child.info, child.lenBase) > 0 {
				if pos, ok := descendLastBoundary(child, base, limit, m); ok {
					c.Set(pos)
					return pos, true
				}
			}
		}
	}
	return 0, false
}

// descendFirstBoundary finds the first boundary in n (starting at base)
// that lies strictly after the absolute position limit.
func descendFirstBoundary[L Leaf[L, I], I any](n *Node[L, I], base, limit int, m Metric[L, I]) (int, bool) {
	if n.isLeaf {
		if base > limit && m.IsBoundary(n.leaf, 0) {
			return base, true
		}
		if off, ok := m.Next(n.leaf, 0); ok {
			return base + off, true
		}
		return 0, false
	}
	b := base
	for _, child := range n.children {
		if m.Measure(child.info, child.lenBase) > 0 {
			if pos, ok := descendFirstBoundary(child, b, limit, m); ok {
				return pos, true
			}
		}
		b += child.lenBase
	}
	return 0, false
}

// descendLastBoundary finds the last boundary in n (starting at base) that
// lies strictly before the absolute position limit.
func descendLastBoundary[L Leaf[L, I], I any](n *Node[L, I], base, limit int, m Metric[L, I]) (int, bool) {
	if n.isLeaf {
		end := n.leaf.Len() + 1
		if limit-base < end {
			end = limit - base
		}
		if off, ok := m.Prev(n.leaf, end); ok {
			return base + off, true
		}
		return 0, false
	}
	bases := make([]int, len(n.children))
	acc := base
	for i, child := range n.children {
		bases[i] = acc
		acc += child.lenBase
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		child := n.children[i]
		if m.Measure(child.info, child.lenBase) > 0 {
			if pos, ok := descendLastBoundary(child, bases[i], limit, m); ok {
				return pos, true
			}
		}
	}
	return 0, false
}

// PeekNextLeaf returns the leaf immediately following the current one, if
// any, without moving the cursor. Used by builders that stream leaves out
// of an existing tree (spec.md §4.E).
func (c *Cursor[L, I]) PeekNextLeaf() (L, bool) {
	var zero L
	lf := c.path[len(c.path)-1]
	next := lf.baseStart + lf.node.leaf.Len()
	if next >= c.root.lenBase {
		return zero, false
	}
	peek := NewCursor[L, I](c.root)
	peek.Set(next)
	leaf, _ := peek.GetLeaf()
	return leaf, true
}

// PeekPrevLeaf returns the leaf immediately preceding the current one.
func (c *Cursor[L, I]) PeekPrevLeaf() (L, bool) {
	var zero L
	lf := c.path[len(c.path)-1]
	if lf.baseStart <= 0 {
		return zero, false
	}
	peek := NewCursor[L, I](c.root)
	peek.Set(lf.baseStart - 1)
	leaf, _ := peek.GetLeaf()
	return leaf, true
}
