// Package numeric holds the handful of generic numeric helpers shared by
// mtree's exemplar leaf packages, built on golang.org/x/exp/constraints
// rather than hand-rolled per-type comparisons.
package numeric

import "golang.org/x/exp/constraints"

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
