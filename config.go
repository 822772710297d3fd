package mtree

import "fmt"

const (
	// DefaultMinChildren is the lower occupancy bound for internal nodes,
	// per spec.md §3's recommendation.
	DefaultMinChildren = 4
	// DefaultMaxChildren is the upper occupancy bound for internal nodes.
	DefaultMaxChildren = 8
)

// Config configures a Node[L, I] tree: how infos are aggregated and how
// wide internal nodes are allowed to grow before splitting.
type Config[I any] struct {
	// Monoid aggregates summaries up the tree. Required.
	Monoid Monoid[I]
	// MinChildren is the minimum number of children for a non-root
	// internal node. Defaults to DefaultMinChildren.
	MinChildren int
	// MaxChildren is the maximum number of children for an internal
	// node. Defaults to DefaultMaxChildren.
	MaxChildren int
}

func (cfg Config[I]) normalized() Config[I] {
	if cfg.MinChildren == 0 {
		cfg.MinChildren = DefaultMinChildren
	}
	if cfg.MaxChildren == 0 {
		cfg.MaxChildren = DefaultMaxChildren
	}
	return cfg
}

func (cfg Config[I]) validate() error {
	cfg = cfg.normalized()
	if cfg.Monoid == nil {
		return fmt.Errorf("%w: monoid is required", ErrInvalidConfig)
	}
	if cfg.MaxChildren < 2 {
		return fmt.Errorf("%w: MaxChildren must be >= 2", ErrInvalidConfig)
	}
	if cfg.MinChildren < 2 || cfg.MinChildren > cfg.MaxChildren/2 {
		return fmt.Errorf("%w: MinChildren must be in [2, MaxChildren/2]", ErrInvalidConfig)
	}
	return nil
}

// NewConfig validates and normalizes cfg, following the same
// validate-then-normalize discipline the tree's config types use
// throughout this module.
func NewConfig[I any](cfg Config[I]) (Config[I], error) {
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg.normalized(), nil
}
