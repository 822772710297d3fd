// Copyright 2016 The xi-editor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package breaks is the mtree exemplar leaf: a set of indexes, typically
// used to store the result of line breaking over some underlying text.
// Each break carries a width alongside its offset, so a tree of breaks
// tracks both "where do lines end" and "how wide is the widest line" in
// the same structure.
package breaks

import (
	"sort"

	"github.com/npillmayer/mtree"
	"github.com/npillmayer/mtree/internal/numeric"
)

// MinLeaf and MaxLeaf bound the number of breaks a single Leaf may hold
// before the balancer considers it under/over full.
const (
	MinLeaf = 32
	MaxLeaf = 64
)

type entry struct {
	offset int
	width  int
}

// Leaf holds a run of breaks as (offset, width) pairs, offsets measured
// from the start of the leaf.
type Leaf struct {
	length int
	data   []entry
}

// Entry is a single break: its offset within the leaf and its width.
type Entry struct {
	Offset int
	Width  int
}

// Entries returns the leaf's breaks. Exposed for inspection and testing.
func (l *Leaf) Entries() []Entry {
	out := make([]Entry, len(l.data))
	for i, e := range l.data {
		out[i] = Entry{Offset: e.offset, Width: e.width}
	}
	return out
}

// Len reports the leaf's length in base units.
func (l *Leaf) Len() int {
	return l.length
}

// IsOkChild reports whether the leaf holds enough breaks to be a
// well-formed child of an internal node.
func (l *Leaf) IsOkChild() bool {
	return len(l.data) >= MinLeaf
}

// PushMaybeSplit appends other's breaks lying in iv onto the receiver,
// splitting off a new leaf once MaxLeaf is exceeded.
func (l *Leaf) PushMaybeSplit(other *Leaf, iv mtree.Interval) (*Leaf, bool) {
	start, end := iv.Start, iv.End
	for _, e := range other.data {
		if start < e.offset && e.offset <= end {
			l.data = append(l.data, entry{offset: e.offset - start + l.length, width: e.width})
		}
	}
	l.length += numeric.Min(end, other.length) - start

	if len(l.data) <= MaxLeaf {
		return nil, false
	}

	splitpoint := len(l.data) / 2 // number of breaks kept on the left
	splitpointUnits := l.data[splitpoint-1].offset

	tail := append([]entry(nil), l.data[splitpoint:]...)
	for i := range tail {
		tail[i].offset -= splitpointUnits
	}
	newLen := l.length - splitpointUnits
	l.data = l.data[:splitpoint]
	l.length = splitpointUnits
	return &Leaf{length: newLen, data: tail}, true
}

// Clone returns a value-independent copy.
func (l *Leaf) Clone() *Leaf {
	return &Leaf{length: l.length, data: append([]entry(nil), l.data...)}
}

// Empty returns a fresh, zero-length leaf.
func (l *Leaf) Empty() *Leaf {
	return &Leaf{}
}

// ComputeInfo derives the leaf's Info: break count and the widest line
// recorded in the leaf.
func (l *Leaf) ComputeInfo() Info {
	maxWidth := 0
	for _, e := range l.data {
		maxWidth = numeric.Max(maxWidth, e.width)
	}
	return Info{count: len(l.data), maxWidth: maxWidth}
}

// Info is the aggregated summary of a breaks subtree: how many breaks it
// holds, and the widest line among them.
type Info struct {
	count    int
	maxWidth int
}

// Count returns the number of breaks summarized.
func (i Info) Count() int { return i.count }

// MaxWidth returns the widest line width summarized.
func (i Info) MaxWidth() int { return i.maxWidth }

type infoMonoid struct{}

func (infoMonoid) Zero() Info { return Info{} }

func (infoMonoid) Accumulate(a, b Info) Info {
	return Info{count: a.count + b.count, maxWidth: numeric.Max(a.maxWidth, b.maxWidth)}
}

// InfoMonoid is the Monoid[Info] every breaks tree is configured with.
var InfoMonoid mtree.Monoid[Info] = infoMonoid{}

// DefaultConfig returns a mtree.Config wired with InfoMonoid and the
// package defaults for branching factor.
func DefaultConfig() mtree.Config[Info] {
	return mtree.Config[Info]{Monoid: InfoMonoid}
}

// search returns the position at which offset would be inserted into
// data's offsets to keep it sorted, and whether it is already present
// there exactly. It underlies IsBoundary, Next and FromBaseUnits, all of
// which key off the same binary search in the original; Prev scans the
// entries linearly instead.
func search(data []entry, offset int) (idx int, exact bool) {
	idx = sort.Search(len(data), func(i int) bool { return data[i].offset >= offset })
	exact = idx < len(data) && data[idx].offset == offset
	return idx, exact
}

// BreaksMetric counts breaks: one unit per break, boundaries sitting at
// each break's offset.
type BreaksMetric struct{}

func (BreaksMetric) Measure(info Info, _ int) int {
	return info.count
}

func (BreaksMetric) ToBaseUnits(leaf *Leaf, inMetric int) int {
	if inMetric > len(leaf.data) {
		return leaf.length + 1
	}
	if inMetric == 0 {
		return 0
	}
	return leaf.data[inMetric-1].offset
}

func (BreaksMetric) FromBaseUnits(leaf *Leaf, inBase int) int {
	idx, exact := search(leaf.data, inBase)
	if exact {
		return idx + 1
	}
	return idx
}

func (BreaksMetric) IsBoundary(leaf *Leaf, offset int) bool {
	_, exact := search(leaf.data, offset)
	return exact
}

func (BreaksMetric) Prev(leaf *Leaf, offset int) (int, bool) {
	for i := 0; i < len(leaf.data); i++ {
		if offset <= leaf.data[i].offset {
			if i == 0 {
				return 0, false
			}
			return leaf.data[i-1].offset, true
		}
	}
	if len(leaf.data) == 0 {
		return 0, false
	}
	return leaf.data[len(leaf.data)-1].offset, true
}

func (BreaksMetric) Next(leaf *Leaf, offset int) (int, bool) {
	idx, exact := search(leaf.data, offset)
	n := idx
	if exact {
		n = idx + 1
	}
	if n == len(leaf.data) {
		return 0, false
	}
	return leaf.data[n].offset, true
}

func (BreaksMetric) CanFragment() bool { return true }

// BreaksBaseMetric is the tree's base-unit metric: it measures in the same
// base units the tree itself uses, forwarding boundary queries to
// BreaksMetric since a base offset that lands on a break is, by
// definition, also a break boundary.
type BreaksBaseMetric struct{}

func (BreaksBaseMetric) Measure(_ Info, baseLen int) int { return baseLen }

func (BreaksBaseMetric) ToBaseUnits(_ *Leaf, inMeasuredUnits int) int { return inMeasuredUnits }

func (BreaksBaseMetric) FromBaseUnits(_ *Leaf, inBaseUnits int) int { return inBaseUnits }

func (BreaksBaseMetric) IsBoundary(leaf *Leaf, offset int) bool {
	return BreaksMetric{}.IsBoundary(leaf, offset)
}

func (BreaksBaseMetric) Prev(leaf *Leaf, offset int) (int, bool) {
	return BreaksMetric{}.Prev(leaf, offset)
}

func (BreaksBaseMetric) Next(leaf *Leaf, offset int) (int, bool) {
	return BreaksMetric{}.Next(leaf, offset)
}

func (BreaksBaseMetric) CanFragment() bool { return true }

// NewNoBreak returns a length-only tree with no breaks in it: useful as a
// plain filler in edit operations. Use BreakBuilder when breaks need to be
// recorded.
func NewNoBreak(cfg mtree.Config[Info], length int) (*mtree.Node[*Leaf, Info], error) {
	return mtree.FromLeaf(cfg, &Leaf{length: length})
}

// MaxWidth returns the widest line width recorded anywhere in tree.
func MaxWidth(tree *mtree.Node[*Leaf, Info]) int {
	return tree.GetInfo().maxWidth
}

// BreakBuilder assembles a breaks tree from a stream of add_break /
// add_no_break calls, the way a line-breaking pass would emit it.
type BreakBuilder struct {
	cfg  mtree.Config[Info]
	b    *mtree.TreeBuilder[*Leaf, Info]
	leaf *Leaf
}

// NewBreakBuilder creates an empty builder. cfg is validated once here, so
// later Build/AddBreak calls never need to surface a config error.
func NewBreakBuilder(cfg mtree.Config[Info]) (*BreakBuilder, error) {
	validated, err := mtree.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &BreakBuilder{cfg: validated, b: mtree.NewTreeBuilder[*Leaf, Info](&validated), leaf: &Leaf{}}, nil
}

// AddBreak records a break length base units after the previous one, width
// wide.
func (bb *BreakBuilder) AddBreak(length, width int) {
	if len(bb.leaf.data) == MaxLeaf {
		full := bb.leaf
		bb.leaf = &Leaf{}
		node, err := mtree.FromLeaf(bb.cfg, full)
		if err != nil {
			panic(err)
		}
		bb.b.Push(node)
	}
	bb.leaf.length += length
	bb.leaf.data = append(bb.leaf.data, entry{offset: bb.leaf.length, width: width})
}

// AddNoBreak extends the current run by length base units with no break.
func (bb *BreakBuilder) AddNoBreak(length int) {
	bb.leaf.length += length
}

// Build finalizes the builder into a balanced breaks tree.
func (bb *BreakBuilder) Build() *mtree.Node[*Leaf, Info] {
	node, err := mtree.FromLeaf(bb.cfg, bb.leaf)
	if err != nil {
		panic(err)
	}
	bb.b.Push(node)
	return bb.b.Build()
}
