package mtree

import (
	"fmt"

	"github.com/npillmayer/mtree/internal/diag"
)

// Edit replaces the base-unit interval iv with replacement, producing a new
// balanced tree equal to n[0:iv.Start] ++ replacement ++ n[iv.End:n.Len()].
// n itself is left unchanged and remains valid for any reader holding it.
//
// Subtrees entirely outside iv are handed to the result without copying
// (component F, spec.md §4.F), and only the leaf(ves) straddling iv.Start
// and iv.End are trimmed. Leaves next to the two cut points are not always
// shared: rebalancing at the seams may merge them with a trimmed leaf or
// with the replacement, which builds new leaves in their place.
//
// Edit panics on iv.End > n.Len() or iv.Start > iv.End: these are
// programmer errors, not recoverable conditions, per spec.md §7.
func (n *Node[L, I]) Edit(iv Interval, replacement *Node[L, I]) *Node[L, I] {
	assert(iv.Start >= 0, "Edit: interval start negative")
	assert(iv.Start <= iv.End, "Edit: interval start after end")
	assert(iv.End <= n.lenBase, "Edit: interval end beyond node length")

	prefix, _ := splitAt(n.cfg, n, iv.Start)
	_, suffix := splitAt(n.cfg, n, iv.End)
	result := prefix.Concat(replacement).Concat(suffix)
	trace.Debugf("edit: snapshot=%s iv=[%d,%d) len %d -> %d", diag.NewSnapshotID(), iv.Start, iv.End, n.lenBase, result.lenBase)
	return result
}

// Extract returns the subrange [iv.Start, iv.End) of n as its own tree,
// sharing structure with n wherever whole subtrees fall inside the range.
func (n *Node[L, I]) Extract(iv Interval) *Node[L, I] {
	assert(iv.Start >= 0, "Extract: interval start negative")
	assert(iv.Start <= iv.End, "Extract: interval start after end")
	assert(iv.End <= n.lenBase, "Extract: interval end beyond node length")

	_, afterStart := splitAt(n.cfg, n, iv.Start)
	middle, _ := splitAt(n.cfg, afterStart, iv.End-iv.Start)
	return middle
}

// TryExtract is the boundary-facing counterpart of Extract: rather than
// panicking, it reports a malformed or out-of-range interval as an error,
// for callers passing in offsets they did not compute themselves (e.g. from
// a network request or a file format).
func (n *Node[L, I]) TryExtract(iv Interval) (*Node[L, I], error) {
	if iv.Start < 0 || iv.Start > iv.End {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, iv)
	}
	if iv.End > n.lenBase {
		return nil, fmt.Errorf("%w: end %d exceeds length %d", ErrIndexOutOfBounds, iv.End, n.lenBase)
	}
	return n.Extract(iv), nil
}
