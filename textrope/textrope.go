// Package textrope is an exemplar leaf storing raw text as opaque UTF-8
// bytes, demonstrating that mtree's tree mechanics are equally at home
// under a text buffer as under the line-break index in package breaks.
//
// Per the base spec's Non-goals, this leaf does no grapheme-aware
// splitting, and split/edit offsets passed in by a caller are taken as
// plain byte offsets: a caller that needs rune-safe edits chooses offsets
// that respect UTF-8 boundaries itself, exactly as it must choose offsets
// that make sense for whatever leaf type it is using. The one exception is
// the split a leaf makes on overflow, which moves forward to the next rune
// start (see PushMaybeSplit).
package textrope

import (
	"strings"

	"github.com/npillmayer/mtree"
	"github.com/npillmayer/mtree/internal/numeric"
)

// MinLeaf and MaxLeaf bound a chunk's byte length. Sized an order of
// magnitude above package breaks' MIN_LEAF/MAX_LEAF (32/64): text chunks
// carry bulk content rather than per-break bookkeeping, so the same
// small-leaf-is-wasteful argument applies at a larger size.
const (
	MinLeaf = 511
	MaxLeaf = 1024
)

// Leaf is a chunk of raw text.
type Leaf struct {
	b []byte
}

// NewLeaf wraps s as a single leaf without going through a Builder; useful
// for small, already-known-size content such as a replacement in an Edit.
func NewLeaf(s string) *Leaf {
	return &Leaf{b: []byte(s)}
}

// String returns the chunk's content.
func (l *Leaf) String() string { return string(l.b) }

func (l *Leaf) Len() int        { return len(l.b) }
func (l *Leaf) IsOkChild() bool { return len(l.b) >= MinLeaf }

// PushMaybeSplit appends other's bytes in iv onto the receiver, splitting
// off a new chunk once MaxLeaf is exceeded. The split point is the first
// UTF-8 rune start at or after the midpoint, so the resulting chunks remain
// independently valid text, even though the leaf otherwise treats its
// content as opaque bytes.
func (l *Leaf) PushMaybeSplit(other *Leaf, iv mtree.Interval) (*Leaf, bool) {
	l.b = append(l.b, other.b[iv.Start:iv.End]...)
	if len(l.b) <= MaxLeaf {
		return nil, false
	}
	mid := len(l.b) / 2
	for mid > 0 && mid < len(l.b) && !isRuneStart(l.b[mid]) {
		mid++
	}
	tail := append([]byte(nil), l.b[mid:]...)
	l.b = l.b[:mid]
	return &Leaf{b: tail}, true
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// Clone returns a value-independent copy.
func (l *Leaf) Clone() *Leaf { return &Leaf{b: append([]byte(nil), l.b...)} }

// Empty returns a fresh, zero-length chunk.
func (l *Leaf) Empty() *Leaf { return &Leaf{} }

// ComputeInfo counts this chunk's length and newlines.
func (l *Leaf) ComputeInfo() Info {
	return Info{len: len(l.b), lines: strings.Count(string(l.b), "\n")}
}

// Info summarizes a text subtree: its byte length and how many line breaks
// it contains.
type Info struct {
	len   int
	lines int
}

// Len returns the byte length summarized.
func (i Info) Len() int { return i.len }

// Lines returns the number of '\n' characters summarized.
func (i Info) Lines() int { return i.lines }

type infoMonoid struct{}

func (infoMonoid) Zero() Info { return Info{} }
func (infoMonoid) Accumulate(a, b Info) Info {
	return Info{len: a.len + b.len, lines: a.lines + b.lines}
}

// InfoMonoid is the Monoid[Info] every textrope tree is configured with.
var InfoMonoid mtree.Monoid[Info] = infoMonoid{}

// DefaultConfig returns a mtree.Config wired with InfoMonoid.
func DefaultConfig() mtree.Config[Info] {
	return mtree.Config[Info]{Monoid: InfoMonoid}
}

// ByteMetric measures in base units: one unit per byte, every offset a
// boundary. It is the tree's base-unit metric, mirroring
// package breaks' BreaksBaseMetric.
type ByteMetric struct{}

func (ByteMetric) Measure(_ Info, baseLen int) int  { return baseLen }
func (ByteMetric) ToBaseUnits(_ *Leaf, in int) int  { return in }
func (ByteMetric) FromBaseUnits(_ *Leaf, in int) int { return in }
func (ByteMetric) IsBoundary(_ *Leaf, _ int) bool   { return true }
func (ByteMetric) CanFragment() bool                { return true }

func (ByteMetric) Prev(l *Leaf, offset int) (int, bool) {
	if offset <= 0 {
		return 0, false
	}
	return offset - 1, true
}

func (ByteMetric) Next(l *Leaf, offset int) (int, bool) {
	if offset >= l.Len() {
		return 0, false
	}
	return offset + 1, true
}

// LinesMetric counts newlines, one unit per '\n', boundaries sitting
// immediately after each one — the base unit of a line-oriented cursor.
type LinesMetric struct{}

func (LinesMetric) Measure(info Info, _ int) int { return info.lines }

func (LinesMetric) ToBaseUnits(l *Leaf, inMeasuredUnits int) int {
	if inMeasuredUnits <= 0 {
		return 0
	}
	count := 0
	for i, c := range l.b {
		if c == '\n' {
			count++
			if count == inMeasuredUnits {
				return i + 1
			}
		}
	}
	// requested a line past the last one recorded: one-past-last sentinel,
	// mirroring package breaks' BreaksMetric.ToBaseUnits.
	return l.Len() + 1
}

func (LinesMetric) FromBaseUnits(l *Leaf, inBaseUnits int) int {
	bound := numeric.Min(inBaseUnits, l.Len())
	return strings.Count(string(l.b[:bound]), "\n")
}

func (LinesMetric) IsBoundary(l *Leaf, offset int) bool {
	return offset > 0 && offset <= l.Len() && l.b[offset-1] == '\n'
}

func (LinesMetric) Prev(l *Leaf, offset int) (int, bool) {
	for i := offset - 2; i >= 0; i-- {
		if l.b[i] == '\n' {
			return i + 1, true
		}
	}
	return 0, false
}

func (LinesMetric) Next(l *Leaf, offset int) (int, bool) {
	for i := offset; i < len(l.b); i++ {
		if l.b[i] == '\n' {
			return i + 1, true
		}
	}
	return 0, false
}

func (LinesMetric) CanFragment() bool { return true }

// FromString builds a balanced tree holding s, chunking it through a
// TreeBuilder the way a file load would stream content in.
func FromString(cfg mtree.Config[Info], s string) (*mtree.Node[*Leaf, Info], error) {
	validated, err := mtree.NewConfig(cfg)
	if err != nil {
		return nil, err
	}
	b := mtree.NewTreeBuilder[*Leaf, Info](&validated)
	data := []byte(s)
	for i := 0; i < len(data); i += MaxLeaf {
		end := numeric.Min(i+MaxLeaf, len(data))
		leaf, err := mtree.FromLeaf(validated, &Leaf{b: append([]byte(nil), data[i:end]...)})
		if err != nil {
			return nil, err
		}
		b.Push(leaf)
	}
	return b.Build(), nil
}

// String reconstructs the tree's full text content by walking leaf to
// leaf with a Cursor. O(n); intended for tests and debug dumps, not hot
// paths that already hold a Cursor of their own.
func String(tree *mtree.Node[*Leaf, Info]) string {
	if tree == nil || tree.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	cur := mtree.NewCursor[*Leaf](tree)
	total := tree.Len()
	for pos := 0; pos < total; {
		cur.Set(pos)
		leaf, _ := cur.GetLeaf()
		sb.WriteString(leaf.String())
		pos += leaf.Len()
	}
	return sb.String()
}
