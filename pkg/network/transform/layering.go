// Package transform derives discrete structure from computed trophic levels.
package transform

import (
	"math"

	"github.com/matzehuels/trophic/pkg/network"
)

// DefaultRowStep is the height interval that maps to one row.
const DefaultRowStep = 1.0

// AssignTrophicRows assigns every node in heights to the row
// round(height/step), so that nodes whose trophic heights lie within half a
// step of each other share a row. Row 0 holds the lowest level because
// heights are rebased to a minimum of 0.
//
// Nodes missing from heights keep their current row. A non-positive step
// falls back to [DefaultRowStep]. Existing row assignments are overwritten.
//
// It returns the number of distinct rows assigned.
func AssignTrophicRows(g *network.Network, heights map[string]float64, step float64) int {
	if step <= 0 {
		step = DefaultRowStep
	}
	rows := make(map[string]int, len(heights))
	distinct := make(map[int]struct{})
	for id, h := range heights {
		row := int(math.Round(h / step))
		rows[id] = row
		distinct[row] = struct{}{}
	}
	g.SetRows(rows)
	return len(distinct)
}
