package trophic

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/trophic/pkg/matrix"
)

var (
	// ErrUnknownNode is returned by [Rescale] when a leveled identifier has no
	// matching node record.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNoNodes is returned by [Rescale] when no node records are given, so
	// there is no coordinate range to map into.
	ErrNoNodes = errors.New("no nodes to rescale into")
)

// Node is a caller-owned node record. X is the coordinate that receives the
// rescaled height; Y and Label are carried through untouched.
type Node[K comparable] struct {
	ID    K
	Label string
	X     float64
	Y     float64
}

// Rescale maps heights onto node records.
//
// minX and maxX are taken over every record in nodes. Each leveled node i gets
// X = h[i]*scale + minX with scale = (maxX-minX)/(max(h)-min(h)). This is a
// global linear remap of the height range, not a matching of the extremal
// nodes. When all heights are equal every node is placed at minX.
//
// The result holds copies of the matching records in index order.
func Rescale[K comparable](levels *Levels[K], nodes []Node[K]) ([]Node[K], error) {
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}
	byID := make(map[K]Node[K], len(nodes))
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		byID[n.ID] = n
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
	}

	xs := RescaleVec(levels.Heights, minX, maxX)
	out := make([]Node[K], levels.Len())
	for i, id := range levels.IDs() {
		n, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownNode, id)
		}
		n.X = xs[i]
		out[i] = n
	}
	return out, nil
}

// RescaleVec linearly maps the range of h onto [lo, hi]. A vector with no
// spread maps every entry to lo.
func RescaleVec(h matrix.Vector, lo, hi float64) matrix.Vector {
	span := matrix.MaxVec(h) - matrix.MinVec(h)
	out := make(matrix.Vector, len(h))
	if span == 0 {
		for i := range out {
			out[i] = lo
		}
		return out
	}
	scale := (hi - lo) / span
	for i, v := range h {
		out[i] = v*scale + lo
	}
	return out
}
