package mtree

import "github.com/npillmayer/mtree/internal/diag"

// TreeBuilder is a streaming, bottom-up balanced assembler. Push accepts a
// subtree of any height; Build returns a balanced root whose length is the
// sum of pushed lengths and whose info is the accumulation of pushed infos.
//
// Internally it keeps a stack indexed by height (component D of spec.md
// §4.D): whenever the slot at a height collects MaxChildren nodes, they are
// packed into a parent and promoted to the next height. When either the
// pushed leaf or the most recently pushed leaf still held at height 0 fails
// IsOkChild, the two are merged via PushMaybeSplit rather than the new leaf
// being appended as its own slot entry.
type TreeBuilder[L Leaf[L, I], I any] struct {
	cfg   *Config[I]
	stack [][]*Node[L, I]
}

// NewTreeBuilder creates an empty builder for the given configuration.
func NewTreeBuilder[L Leaf[L, I], I any](cfg *Config[I]) *TreeBuilder[L, I] {
	return &TreeBuilder[L, I]{cfg: cfg}
}

// Push appends a subtree of any height to the builder.
func (b *TreeBuilder[L, I]) Push(n *Node[L, I]) {
	if n == nil || n.IsEmpty() {
		return
	}
	for h := 0; h < n.height && h < len(b.stack); h++ {
		if len(b.stack[h]) > 0 {
			// lower levels hold content pushed before n: fold everything
			// pushed so far and join n onto it, so push order is kept
			var acc *Node[L, I]
			for lh := len(b.stack) - 1; lh >= 0; lh-- {
				for _, m := range b.stack[lh] {
					if acc == nil {
						acc = m
					} else {
						acc = acc.Concat(m)
					}
				}
			}
			b.stack = nil
			n = acc.Concat(n)
			break
		}
	}
	b.pushAtHeight(n)
}

func (b *TreeBuilder[L, I]) pushAtHeight(n *Node[L, I]) {
	h := n.height
	for len(b.stack) <= h {
		b.stack = append(b.stack, nil)
	}
	if h == 0 && len(b.stack[0]) > 0 {
		lastIdx := len(b.stack[0]) - 1
		last := b.stack[0][lastIdx]
		if !last.leaf.IsOkChild() || !n.leaf.IsOkChild() {
			merged := last.leaf.Clone()
			split, did := merged.PushMaybeSplit(n.leaf, Interval{0, n.leaf.Len()})
			b.stack[0][lastIdx] = newLeafNode(b.cfg, merged)
			if !did {
				return
			}
			n = newLeafNode(b.cfg, split)
		}
	}
	b.stack[h] = append(b.stack[h], n)
	if len(b.stack[h]) == b.cfg.MaxChildren {
		group := b.stack[h]
		b.stack[h] = nil
		b.pushAtHeight(newInternalNode(b.cfg, group))
	}
}

// Build finalizes the builder and returns the assembled tree. Levels are
// folded from the highest occupied height down to height 0: higher levels
// hold content pushed earlier (and therefore to the left), so folding from
// the top preserves push order while still letting Concat's own balance
// discipline absorb any remaining partial levels.
func (b *TreeBuilder[L, I]) Build() *Node[L, I] {
	var result *Node[L, I]
	for h := len(b.stack) - 1; h >= 0; h-- {
		for _, n := range b.stack[h] {
			if result == nil {
				result = n
			} else {
				result = result.Concat(n)
			}
		}
	}
	if result == nil {
		empty, err := NewEmpty[L](*b.cfg)
		assert(err == nil, "TreeBuilder.Build: empty config invalid")
		result = empty
	}
	trace.Debugf("builder: snapshot=%s built tree len=%d height=%d", diag.NewSnapshotID(), result.lenBase, result.height)
	return result
}
