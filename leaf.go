package mtree

// Leaf is the contract every bottom-level chunk type must satisfy to live
// inside a Node[L, I]. L is the concrete leaf type itself (always a pointer
// to a small struct, so PushMaybeSplit can mutate the receiver in place);
// I is the aggregated info type computed from it.
//
// Go has no associated types, so the self-reference that in Rust would read
// `trait Leaf { type Info; ... }` is expressed here as an F-bounded
// constraint: concrete types implement Leaf[L, I] with L equal to
// themselves (e.g. *breaks.Leaf implements Leaf[*breaks.Leaf, breaks.Info]).
type Leaf[L any, I any] interface {
	// Len reports the length in base units.
	Len() int

	// IsOkChild reports whether the leaf satisfies the balancer's
	// occupancy predicate. The sole exception to needing this to hold is
	// a tree consisting of nothing but a single under-full leaf.
	IsOkChild() bool

	// PushMaybeSplit appends other[iv] onto the receiver. If the result
	// would exceed the leaf's capacity, the receiver keeps the prefix and
	// a new leaf holding the suffix is returned with did == true.
	//
	// After the call, the receiver's Len() equals its previous length
	// plus iv.Len() when did is false, or the prefix length when did is
	// true.
	PushMaybeSplit(other L, iv Interval) (split L, did bool)

	// Clone returns a value-typed copy so mutation through PushMaybeSplit
	// never observably affects any other Node referencing the original.
	Clone() L

	// Empty returns a fresh, zero-length leaf of the same concrete type.
	// The tree's splice and builder machinery uses it as the accumulator
	// PushMaybeSplit appends onto when trimming a boundary leaf.
	Empty() L

	// ComputeInfo derives this leaf's monoidal summary. Must be a pure
	// function of the leaf's content.
	ComputeInfo() I
}

// Monoid aggregates the info type I up the tree. Accumulate must be
// associative and Zero must be its identity:
//
//	Accumulate(Accumulate(a, b), c) == Accumulate(a, Accumulate(b, c))
//	Accumulate(Zero(), a) == a == Accumulate(a, Zero())
type Monoid[I any] interface {
	Zero() I
	Accumulate(a, b I) I
}

// Metric is an abstract coordinate system over a tree's info and base
// length. Concrete metrics are typically zero-sized marker types carrying
// only type identity, matching the tree's leaf and info types.
type Metric[L any, I any] interface {
	// Measure returns the total count in this metric's units for a
	// subtree summarized by info over baseLen base units.
	Measure(info I, baseLen int) int

	// ToBaseUnits converts a count of this metric's units, measured from
	// the start of leaf, to a base-unit offset within leaf.
	ToBaseUnits(leaf L, inMetric int) int

	// FromBaseUnits converts a base-unit offset within leaf to a count of
	// this metric's units.
	FromBaseUnits(leaf L, inBase int) int

	// IsBoundary reports whether offset is a metric boundary within leaf.
	IsBoundary(leaf L, offset int) bool

	// Prev returns the nearest boundary strictly before offset within
	// leaf, if any.
	Prev(leaf L, offset int) (int, bool)

	// Next returns the nearest boundary strictly after offset within
	// leaf, if any.
	Next(leaf L, offset int) (int, bool)

	// CanFragment reports whether boundaries of this metric can occur
	// inside a leaf. Non-fragmentable metrics only have boundaries at
	// leaf edges, letting callers skip the leaf-local probe.
	CanFragment() bool
}
