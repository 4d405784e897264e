package trophic

import (
	"github.com/matzehuels/trophic/pkg/matrix"
)

// Edge is a directed edge between two node identifiers.
type Edge[K comparable] struct {
	From K
	To   K
}

// Index maps node identifiers to matrix indices in first-seen order.
// The zero value is not usable; use [NewIndex].
type Index[K comparable] struct {
	pos map[K]int
	ids []K
}

// NewIndex scans edges once and assigns indices to identifiers in the order
// they are first encountered, the source of each edge before its target.
func NewIndex[K comparable](edges []Edge[K]) *Index[K] {
	idx := &Index[K]{pos: make(map[K]int)}
	for _, e := range edges {
		idx.Add(e.From)
		idx.Add(e.To)
	}
	return idx
}

// Add assigns the next index to id if it has not been seen, and returns the
// index of id either way.
func (x *Index[K]) Add(id K) int {
	if i, ok := x.pos[id]; ok {
		return i
	}
	i := len(x.ids)
	x.pos[id] = i
	x.ids = append(x.ids, id)
	return i
}

// Of returns the index of id and whether it is known.
func (x *Index[K]) Of(id K) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// ID returns the identifier at index i.
func (x *Index[K]) ID(i int) K { return x.ids[i] }

// IDs returns the identifiers in index order. The slice must not be modified.
func (x *Index[K]) IDs() []K { return x.ids }

// Len returns the number of distinct identifiers.
func (x *Index[K]) Len() int { return len(x.ids) }

// Adjacency converts an edge list into a 0/1 adjacency matrix together with
// the index used for its rows and columns. Repeated edges set the same cell
// and do not accumulate weight.
func Adjacency[K comparable](edges []Edge[K]) (matrix.Matrix, *Index[K]) {
	idx := NewIndex(edges)
	a := matrix.Zero(idx.Len())
	for _, e := range edges {
		from, _ := idx.Of(e.From)
		to, _ := idx.Of(e.To)
		a[from][to] = 1
	}
	return a, idx
}

// Levels holds solved heights keyed by node identifier.
type Levels[K comparable] struct {
	index   *Index[K]
	Heights matrix.Vector // rebased, rounded; indexed like IDs()
}

// IDs returns the node identifiers in index order.
func (l *Levels[K]) IDs() []K { return l.index.IDs() }

// Height returns the height of id and whether id is part of the graph.
func (l *Levels[K]) Height(id K) (float64, bool) {
	i, ok := l.index.Of(id)
	if !ok {
		return 0, false
	}
	return l.Heights[i], true
}

// Map returns the heights as a map keyed by identifier.
func (l *Levels[K]) Map() map[K]float64 {
	m := make(map[K]float64, len(l.Heights))
	for i, id := range l.index.IDs() {
		m[id] = l.Heights[i]
	}
	return m
}

// Len returns the number of leveled nodes.
func (l *Levels[K]) Len() int { return len(l.Heights) }

// SolveEdges builds the adjacency matrix for edges and solves it.
func SolveEdges[K comparable](edges []Edge[K], opts ...Option) (*Levels[K], error) {
	a, idx := Adjacency(edges)
	h, err := Solve(a, opts...)
	if err != nil {
		return nil, err
	}
	return &Levels[K]{index: idx, Heights: h}, nil
}

// Compute runs the full pipeline: it levels the graph described by edges and
// returns one node record per distinct identifier, in first-seen order, with X
// replaced by the height rescaled into the x-range of nodes.
//
// nodes must contain a record for every identifier referenced by edges;
// records for nodes without edges only contribute to the x-range. The caller's
// slice is not modified.
func Compute[K comparable](edges []Edge[K], nodes []Node[K], opts ...Option) ([]Node[K], *Levels[K], error) {
	levels, err := SolveEdges(edges, opts...)
	if err != nil {
		return nil, nil, err
	}
	placed, err := Rescale(levels, nodes)
	if err != nil {
		return nil, nil, err
	}
	return placed, levels, nil
}
