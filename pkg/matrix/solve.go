package matrix

import (
	"fmt"
	"math"
)

// Solve solves a·x = b by Gauss-Jordan elimination with partial pivoting.
//
// The system is copied into a separately allocated n×(n+1) augmented buffer,
// so a and b are left untouched. At each column the remaining row with the
// largest absolute entry becomes the pivot row; the first such row wins ties.
// If that entry is exactly zero, Solve stops and returns [ErrSingular].
//
// Partial pivoting improves stability but does not rescue near-singular
// systems; precision is that of float64. Solve returns [ErrDimensionMismatch]
// when a is not square or len(b) differs from its size. An empty system
// yields an empty solution.
func Solve(a Matrix, b Vector) (Vector, error) {
	n := len(a)
	if len(b) != n {
		return nil, fmt.Errorf("%w: %d rows, %d right-hand values", ErrDimensionMismatch, n, len(b))
	}
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), n)
		}
	}

	sys := augment(a, b)
	for i := 0; i < n; i++ {
		p, ok := pivotRow(sys, i)
		if !ok {
			return nil, fmt.Errorf("%w: no pivot in column %d", ErrSingular, i)
		}
		if p != i {
			sys[i], sys[p] = sys[p], sys[i]
		}
		normalizeRow(sys[i], i)
		for j := i + 1; j < n; j++ {
			eliminate(sys[j], sys[i], i, i)
		}
	}

	for i := n - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			eliminate(sys[j], sys[i], i, j)
		}
	}

	x := make(Vector, n)
	for i, row := range sys {
		x[i] = row[n]
	}
	return x, nil
}

// augment allocates the n×(n+1) system [a | b].
func augment(a Matrix, b Vector) Matrix {
	n := len(a)
	sys := make(Matrix, n)
	for i := range a {
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		sys[i] = row
	}
	return sys
}

// pivotRow returns the row in [col, n) with the largest magnitude in column
// col, and false if that magnitude is zero.
func pivotRow(sys Matrix, col int) (int, bool) {
	best := col
	for r := col + 1; r < len(sys); r++ {
		if math.Abs(sys[r][col]) > math.Abs(sys[best][col]) {
			best = r
		}
	}
	return best, sys[best][col] != 0
}

// normalizeRow divides row by its entry in column col, from col onward.
func normalizeRow(row []float64, col int) {
	pivot := row[col]
	for k := col; k < len(row); k++ {
		row[k] /= pivot
	}
}

// eliminate subtracts row[col] times pivot from row, starting at column from.
// Rows that are already zero in col are skipped.
func eliminate(row, pivot []float64, col, from int) {
	f := row[col]
	if f == 0 {
		return
	}
	for k := from; k < len(row); k++ {
		row[k] -= f * pivot[k]
	}
}
