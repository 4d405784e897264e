// Package trophic computes trophic levels for directed graphs.
//
// # Overview
//
// A trophic level (or trophic height) is a scalar assigned to every node such
// that edges tend to point from lower to higher values. The heights are the
// solution of a linear system built from the graph's in- and out-degrees:
//
//	L·h = v
//	L = diag(in + out) - (A OR Aᵀ)
//	v = in - out
//
// L has a one-dimensional null space, so node 0 is anchored by zeroing
// L[0][0] before the solve. The result is rebased so the lowest node sits at
// height 0 and rounded to a fixed number of decimals (3 by default).
//
// # Usage
//
// For an edge list with arbitrary comparable identifiers, [Compute] runs the
// whole pipeline and rescales the heights into the x-range of the caller's
// nodes:
//
//	edges := []trophic.Edge[string]{{From: "grass", To: "rabbit"}, {From: "rabbit", To: "fox"}}
//	nodes := []trophic.Node[string]{{ID: "grass", X: 0}, {ID: "rabbit", X: 50}, {ID: "fox", X: 100}}
//	placed, levels, err := trophic.Compute(edges, nodes)
//
// Lower-level entry points are available: [Adjacency] builds the 0/1 matrix
// and the node [Index]; [Solve] turns a matrix into heights; [Rescale] maps
// heights back onto node records.
//
// # Errors
//
// Two failures come from the algorithm itself and are mutually exclusive:
// [ErrDisconnected] when some node has no edges at all, checked before any
// linear algebra, and [ErrSingular] when elimination finds no usable pivot.
// Neither is retried: the computation is deterministic.
//
// # Identifiers
//
// Node indices are assigned in the order identifiers are first seen while
// scanning the edge list, the source of each edge before its target. That
// order is used for the matrix rows, the height vector and the output nodes.
// Duplicate edges collapse to a single unit entry.
package trophic
