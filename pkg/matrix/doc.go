// Package matrix provides the dense square-matrix and vector primitives used
// to compute trophic levels.
//
// # Representation
//
// A [Matrix] is a slice of rows and a [Vector] is a plain slice of float64.
// Adjacency matrices built by package trophic contain only 0 and 1, but the
// kernels accept arbitrary finite values so the same types can carry the
// degree-weighted Laplacian and the solver's working state.
//
// Functions in this package assume square inputs and matching vector lengths.
// They do not validate shapes; mismatched inputs are a programming error on
// the caller's side. The exception is [Solve], which checks its inputs and
// returns [ErrDimensionMismatch] because it sits on the boundary between
// graph construction and numerics.
//
// # Connectivity
//
// [Connected] reports whether every row has at least one nonzero entry. Under
// the undirected view of a graph this rejects isolated nodes only; two
// components that are each internally connected still pass. Callers that need
// path connectivity must check it themselves.
//
// # Solving
//
// [Solve] performs Gauss-Jordan elimination with partial pivoting on an
// augmented copy of the system. The caller's matrix and vector are never
// modified. A column whose best available pivot is exactly zero yields
// [ErrSingular] and no solution vector.
package matrix
