package mtree

// Concat joins n and other into a new balanced tree in O(log max(height))
// amortized, sharing both input subtrees. Unaffected structure is never
// copied; only the spine touched by the join is rebuilt, following the
// balance discipline of spec.md §4.C: if heights differ by at most one and
// the combined children fit, join directly; otherwise descend the taller
// side and rebalance recursively, promoting a new parent only when a level
// overflows.
func (n *Node[L, I]) Concat(other *Node[L, I]) *Node[L, I] {
	if n.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return n
	}
	left, right := concatNodes(n.cfg, n, other)
	if right == nil {
		return left
	}
	return newInternalNode(n.cfg, []*Node[L, I]{left, right})
}

// concatNodes concatenates left and right, returning a single merged node
// when it fits the branching bound, or two siblings (to be joined by a new
// parent) when it overflows.
func concatNodes[L Leaf[L, I], I any](cfg *Config[I], left, right *Node[L, I]) (*Node[L, I], *Node[L, I]) {
	if left.IsEmpty() {
		return right, nil
	}
	if right.IsEmpty() {
		return left, nil
	}

	if left.height == right.height {
		return concatSameHeight(cfg, left, right)
	}

	if left.height > right.height {
		lastIdx := len(left.children) - 1
		childLeft, childRight := concatNodes(cfg, left.children[lastIdx], right)
		children := cloneChildren(left.children)
		children[lastIdx] = childLeft
		if childRight != nil {
			children = insertAt(children, lastIdx+1, childRight)
		}
		if len(children) > cfg.MaxChildren {
			return splitChildren(cfg, children)
		}
		return newInternalNode(cfg, children), nil
	}

	firstLeft, firstRight := concatNodes(cfg, left, right.children[0])
	children := cloneChildren(right.children)
	if firstRight != nil {
		children[0] = firstRight
		children = insertAt(children, 0, firstLeft)
	} else {
		children[0] = firstLeft
	}
	if len(children) > cfg.MaxChildren {
		return splitChildren(cfg, children)
	}
	return newInternalNode(cfg, children), nil
}

func concatSameHeight[L Leaf[L, I], I any](cfg *Config[I], left, right *Node[L, I]) (*Node[L, I], *Node[L, I]) {
	if left.height == 0 {
		merged := left.leaf.Clone()
		split, did := merged.PushMaybeSplit(right.leaf, Interval{0, right.leaf.Len()})
		if !did {
			return newLeafNode(cfg, merged), nil
		}
		return newLeafNode(cfg, merged), newLeafNode(cfg, split)
	}
	total := len(left.children) + len(right.children)
	if total <= cfg.MaxChildren {
		children := make([]*Node[L, I], 0, total)
		children = append(children, left.children...)
		children = append(children, right.children...)
		return newInternalNode(cfg, children), nil
	}
	return left, right
}

func splitChildren[L Leaf[L, I], I any](cfg *Config[I], children []*Node[L, I]) (*Node[L, I], *Node[L, I]) {
	n := len(children)
	assert(n <= 2*cfg.MaxChildren, "splitChildren: too many children for a two-way split")
	mid := n / 2
	left := newInternalNode(cfg, append([]*Node[L, I](nil), children[:mid]...))
	right := newInternalNode(cfg, append([]*Node[L, I](nil), children[mid:]...))
	return left, right
}
