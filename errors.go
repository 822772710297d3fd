package mtree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("mtree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index or interval.
	ErrIndexOutOfBounds = errors.New("mtree: index out of bounds")
	// ErrInvalidInterval signals a malformed interval: a negative start, or
	// start > end. An end beyond the length of the node it addresses is
	// reported as ErrIndexOutOfBounds instead.
	ErrInvalidInterval = errors.New("mtree: invalid interval")
)
