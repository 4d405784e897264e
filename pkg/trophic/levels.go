package trophic

import (
	"errors"
	"fmt"

	"github.com/matzehuels/trophic/pkg/matrix"
)

var (
	// ErrDisconnected is returned when some node has zero degree in the
	// undirected view of the graph. No linear algebra is attempted.
	ErrDisconnected = errors.New("network must be weakly connected")

	// ErrSingular is returned when the anchored system has no usable pivot.
	// It wraps [matrix.ErrSingular].
	ErrSingular = fmt.Errorf("trophic: %w", matrix.ErrSingular)

	// ErrEmptyGraph is returned when there are no nodes to level.
	ErrEmptyGraph = errors.New("graph has no nodes")
)

// DefaultPrecision is the number of decimal places heights are rounded to.
const DefaultPrecision = 3

// options configures Solve.
type options struct {
	precision int
}

// Option customizes a level computation.
type Option func(*options)

// WithPrecision sets the number of decimal places heights are rounded to.
// A negative value disables rounding.
func WithPrecision(places int) Option {
	return func(o *options) { o.precision = places }
}

func newOptions(opts []Option) options {
	o := options{precision: DefaultPrecision}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Solve computes the trophic height of every node of adjacency matrix a.
//
// The returned vector is indexed like the rows of a, rebased so its minimum
// is 0 and rounded to [DefaultPrecision] decimals unless overridden. Node 0
// is always the anchor that removes the Laplacian's rank deficiency.
//
// Solve returns [ErrDisconnected] if any node has no edges, [ErrSingular] if
// the anchored system cannot be solved and [ErrEmptyGraph] for a 0×0 matrix.
// a is not modified.
func Solve(a matrix.Matrix, opts ...Option) (matrix.Vector, error) {
	o := newOptions(opts)
	if len(a) == 0 {
		return nil, ErrEmptyGraph
	}
	if !matrix.Connected(matrix.Undirected(a)) {
		return nil, ErrDisconnected
	}

	in := matrix.InDegree(a)
	out := matrix.OutDegree(a)
	v := matrix.SubVec(in, out)

	l := matrix.Subtract(matrix.Diag(matrix.AddVec(in, out)), matrix.MergeTranspose(a))
	l[0][0] = 0

	h, err := matrix.Solve(l, v)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, ErrSingular
		}
		return nil, err
	}

	h = matrix.Rebase(h)
	return matrix.Round(h, o.precision), nil
}
