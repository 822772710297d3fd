// Package spans is a third exemplar leaf, storing annotation spans
// (selections, syntax-highlight ranges, plugin-attached markers — the kind
// of data xi-editor's core-lib annotations and rope::spans layer over a
// rope) instead of line breaks or text. It exists to prove the same tree
// mechanics serve a leaf whose content is neither characters nor simple
// indexes but tagged ranges.
//
// A Span covers [Start, End) of the leaf's base units and carries an
// integer Kind identifying what it means to the caller (selection,
// diagnostic, highlight class, ...); spans package assigns no meaning to
// Kind values itself.
package spans

import (
	"github.com/npillmayer/mtree"
	"github.com/npillmayer/mtree/internal/numeric"
)

// MinLeaf and MaxLeaf bound the number of spans a leaf holds, sized the
// same as package breaks: both leaves hold small fixed-size records rather
// than bulk content.
const (
	MinLeaf = 32
	MaxLeaf = 64
)

// Span is one annotation, relative to the start of whatever leaf or tree
// it is read from.
type Span struct {
	Start int
	End   int
	Kind  int
}

// Leaf holds a run of spans alongside the base-unit length they annotate.
type Leaf struct {
	length int
	spans  []Span
}

// NewLeaf wraps length base units of unannotated content.
func NewLeaf(length int) *Leaf {
	return &Leaf{length: length}
}

// Spans returns the leaf's annotations, offsets relative to the leaf.
func (l *Leaf) Spans() []Span {
	return append([]Span(nil), l.spans...)
}

func (l *Leaf) Len() int        { return l.length }
func (l *Leaf) IsOkChild() bool { return len(l.spans) >= MinLeaf }

// PushMaybeSplit appends other's spans overlapping iv onto the receiver,
// shifted into the receiver's coordinate space, splitting off a new leaf
// once MaxLeaf is exceeded.
//
// A span straddling iv's edge is clipped to iv, the same trimming
// PushMaybeSplit performs on the backing content itself elsewhere in this
// module: a partially-included span only makes sense restricted to the
// portion actually being pushed.
func (l *Leaf) PushMaybeSplit(other *Leaf, iv mtree.Interval) (*Leaf, bool) {
	base := l.length
	for _, s := range other.spans {
		start := numeric.Max(s.Start, iv.Start)
		end := numeric.Min(s.End, iv.End)
		if start >= end {
			continue
		}
		l.spans = append(l.spans, Span{Start: base + start - iv.Start, End: base + end - iv.Start, Kind: s.Kind})
	}
	l.length += numeric.Min(iv.End, other.length) - iv.Start

	if len(l.spans) <= MaxLeaf {
		return nil, false
	}

	splitpoint := len(l.spans) / 2
	splitUnits := l.spans[splitpoint-1].End

	tail := append([]Span(nil), l.spans[splitpoint:]...)
	for i := range tail {
		tail[i].Start -= splitUnits
		tail[i].End -= splitUnits
	}
	newLen := l.length - splitUnits
	l.spans = l.spans[:splitpoint]
	l.length = splitUnits
	return &Leaf{length: newLen, spans: tail}, true
}

// Clone returns a value-independent copy.
func (l *Leaf) Clone() *Leaf {
	return &Leaf{length: l.length, spans: append([]Span(nil), l.spans...)}
}

// Empty returns a fresh, zero-length, unannotated leaf.
func (l *Leaf) Empty() *Leaf { return &Leaf{} }

// ComputeInfo summarizes the leaf's span count and the union of Kind
// values it carries, as a bitmask for O(1) "does this subtree contain a
// span of kind k" queries without descending into it.
func (l *Leaf) ComputeInfo() Info {
	var mask uint64
	for _, s := range l.spans {
		if s.Kind >= 0 && s.Kind < 64 {
			mask |= 1 << uint(s.Kind)
		}
	}
	return Info{count: len(l.spans), kindMask: mask}
}

// Info is the aggregated summary of a spans subtree.
type Info struct {
	count    int
	kindMask uint64
}

// Count returns the number of spans summarized.
func (i Info) Count() int { return i.count }

// HasKind reports whether any summarized span carries the given Kind.
// Kind values outside [0,64) are never tracked and always report false.
func (i Info) HasKind(kind int) bool {
	if kind < 0 || kind >= 64 {
		return false
	}
	return i.kindMask&(1<<uint(kind)) != 0
}

type infoMonoid struct{}

func (infoMonoid) Zero() Info { return Info{} }
func (infoMonoid) Accumulate(a, b Info) Info {
	return Info{count: a.count + b.count, kindMask: a.kindMask | b.kindMask}
}

// InfoMonoid is the Monoid[Info] every spans tree is configured with.
var InfoMonoid mtree.Monoid[Info] = infoMonoid{}

// DefaultConfig returns a mtree.Config wired with InfoMonoid.
func DefaultConfig() mtree.Config[Info] {
	return mtree.Config[Info]{Monoid: InfoMonoid}
}

// SpanMetric counts spans, one unit per span, boundaries at each span's
// start offset.
type SpanMetric struct{}

func (SpanMetric) Measure(info Info, _ int) int { return info.count }

func (SpanMetric) ToBaseUnits(l *Leaf, inMeasuredUnits int) int {
	if inMeasuredUnits > len(l.spans) {
		return l.length + 1
	}
	if inMeasuredUnits == 0 {
		return 0
	}
	return l.spans[inMeasuredUnits-1].Start
}

func (SpanMetric) FromBaseUnits(l *Leaf, inBaseUnits int) int {
	n := 0
	for _, s := range l.spans {
		if s.Start < inBaseUnits {
			n++
		}
	}
	return n
}

func (SpanMetric) IsBoundary(l *Leaf, offset int) bool {
	for _, s := range l.spans {
		if s.Start == offset {
			return true
		}
	}
	return false
}

func (SpanMetric) Prev(l *Leaf, offset int) (int, bool) {
	found, ok := -1, false
	for _, s := range l.spans {
		if s.Start < offset && s.Start > found {
			found, ok = s.Start, true
		}
	}
	return found, ok
}

func (SpanMetric) Next(l *Leaf, offset int) (int, bool) {
	best, ok := -1, false
	for _, s := range l.spans {
		if s.Start > offset && (!ok || s.Start < best) {
			best, ok = s.Start, true
		}
	}
	return best, ok
}

func (SpanMetric) CanFragment() bool { return true }

// BaseMetric is the tree's base-unit metric, measuring in the same base
// units the tree itself uses and forwarding boundary queries to SpanMetric.
type BaseMetric struct{}

func (BaseMetric) Measure(_ Info, baseLen int) int { return baseLen }

func (BaseMetric) ToBaseUnits(_ *Leaf, inMeasuredUnits int) int { return inMeasuredUnits }

func (BaseMetric) FromBaseUnits(_ *Leaf, inBaseUnits int) int { return inBaseUnits }

func (BaseMetric) IsBoundary(l *Leaf, offset int) bool { return SpanMetric{}.IsBoundary(l, offset) }

func (BaseMetric) Prev(l *Leaf, offset int) (int, bool) { return SpanMetric{}.Prev(l, offset) }

func (BaseMetric) Next(l *Leaf, offset int) (int, bool) { return SpanMetric{}.Next(l, offset) }

func (BaseMetric) CanFragment() bool { return true }

// Builder assembles a spans tree from a stream of annotated and plain
// runs, the way a syntax highlighter or selection tracker would emit one.
type Builder struct {
	cfg  mtree.Config[Info]
	b    *mtree.TreeBuilder[*Leaf, Info]
	leaf *Leaf
}

// NewBuilder creates an empty builder. cfg is validated once here, so
// later AddSpan/Build calls never need to surface a config error.
func NewBuilder(cfg mtree.Config[Info]) (*Builder, error) {
	validated, err := mtree.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Builder{cfg: validated, b: mtree.NewTreeBuilder[*Leaf, Info](&validated), leaf: &Leaf{}}, nil
}

// AddSpan records a span of length base units, tagged kind, starting at
// the builder's current position.
func (b *Builder) AddSpan(length, kind int) {
	if len(b.leaf.spans) == MaxLeaf {
		b.flush()
	}
	start := b.leaf.length
	b.leaf.length += length
	b.leaf.spans = append(b.leaf.spans, Span{Start: start, End: start + length, Kind: kind})
}

// AddGap extends the current position by length base units with no span.
func (b *Builder) AddGap(length int) {
	b.leaf.length += length
}

func (b *Builder) flush() {
	full := b.leaf
	b.leaf = &Leaf{}
	node, err := mtree.FromLeaf(b.cfg, full)
	if err != nil {
		panic(err)
	}
	b.b.Push(node)
}

// Build finalizes the builder into a balanced spans tree.
func (b *Builder) Build() *mtree.Node[*Leaf, Info] {
	node, err := mtree.FromLeaf(b.cfg, b.leaf)
	if err != nil {
		panic(err)
	}
	b.b.Push(node)
	return b.b.Build()
}
