package mtree

// splitAt partitions n's content at base offset index into a left tree
// holding [0, index) and a right tree holding [index, n.Len()). Subtrees
// lying entirely on one side of index are shared (pushed into the
// corresponding builder without being touched); only the leaf straddling
// index is trimmed, via Leaf.PushMaybeSplit onto a fresh Empty leaf.
func splitAt[L Leaf[L, I], I any](cfg *Config[I], n *Node[L, I], index int) (*Node[L, I], *Node[L, I]) {
	left := NewTreeBuilder[L, I](cfg)
	right := NewTreeBuilder[L, I](cfg)
	descendSplit(cfg, n, 0, index, left, right)
	return left.Build(), right.Build()
}

func descendSplit[L Leaf[L, I], I any](cfg *Config[I], n *Node[L, I], base, index int, left, right *TreeBuilder[L, I]) {
	if n.IsEmpty() {
		return
	}
	end := base + n.lenBase
	if end <= index {
		left.Push(n)
		return
	}
	if base >= index {
		right.Push(n)
		return
	}
	if n.isLeaf {
		local := index - base
		if local > 0 {
			prefix := n.leaf.Empty()
			prefix.PushMaybeSplit(n.leaf, Interval{0, local})
			left.Push(newLeafNode(cfg, prefix))
		}
		if local < n.lenBase {
			suffix := n.leaf.Empty()
			suffix.PushMaybeSplit(n.leaf, Interval{local, n.lenBase})
			right.Push(newLeafNode(cfg, suffix))
		}
		return
	}
	childBase := base
	for _, c := range n.children {
		descendSplit(cfg, c, childBase, index, left, right)
		childBase += c.lenBase
	}
}
