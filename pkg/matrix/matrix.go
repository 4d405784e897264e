package matrix

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrSingular is returned by [Solve] when some column has no usable pivot.
	ErrSingular = errors.New("singular matrix")

	// ErrDimensionMismatch is returned by [Solve] when the coefficient matrix is
	// not square or the right-hand side has the wrong length.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Matrix is a dense matrix stored as a slice of rows.
type Matrix [][]float64

// Vector is a dense vector.
type Vector []float64

// Zero returns an n×n matrix with every cell set to zero.
func Zero(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Diag returns a zero matrix with v along the leading diagonal.
func Diag(v Vector) Matrix {
	m := Zero(len(v))
	for i, x := range v {
		m[i][i] = x
	}
	return m
}

// Clone returns a deep copy of a.
func Clone(a Matrix) Matrix {
	b := make(Matrix, len(a))
	for i, row := range a {
		b[i] = slices.Clone(row)
	}
	return b
}

// Transpose returns a new matrix with cells mirrored across the diagonal.
func Transpose(a Matrix) Matrix {
	n := len(a)
	b := Zero(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b[i][j] = a[j][i]
		}
	}
	return b
}

// Undirected returns the undirected view of adjacency matrix a.
// For every pair i != j the result holds 1 in both [i][j] and [j][i] when
// either direction is nonzero in a, and 0 otherwise. The diagonal is copied
// unchanged.
func Undirected(a Matrix) Matrix {
	n := len(a)
	b := Zero(n)
	for i := 0; i < n; i++ {
		b[i][i] = a[i][i]
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if a[i][j] != 0 || a[j][i] != 0 {
				b[i][j], b[j][i] = 1, 1
			}
		}
	}
	return b
}

// MergeTranspose returns the transpose of a with every cell set to 1 where
// a itself is positive. For a 0/1 adjacency matrix this is a OR aᵀ.
func MergeTranspose(a Matrix) Matrix {
	b := Transpose(a)
	for i := range a {
		for j := range a[i] {
			if a[i][j] > 0 {
				b[i][j] = 1
			}
		}
	}
	return b
}

// Connected reports whether every row of a has at least one nonzero entry.
// It does not test path connectivity; see the package documentation.
func Connected(a Matrix) bool {
	for _, row := range a {
		if !slices.ContainsFunc(row, func(x float64) bool { return x != 0 }) {
			return false
		}
	}
	return true
}

// OutDegree returns the row sums of a.
func OutDegree(a Matrix) Vector {
	v := make(Vector, len(a))
	for i, row := range a {
		v[i] = SumVec(row)
	}
	return v
}

// InDegree returns the column sums of a, computed as the row sums of its
// transpose.
func InDegree(a Matrix) Vector {
	return OutDegree(Transpose(a))
}

// Subtract returns a - b.
func Subtract(a, b Matrix) Matrix {
	c := make(Matrix, len(a))
	for i := range a {
		c[i] = SubVec(a[i], b[i])
	}
	return c
}

// Mul returns the product a·x.
func Mul(a Matrix, x Vector) Vector {
	out := make(Vector, len(a))
	for i, row := range a {
		var sum float64
		for j, v := range row {
			sum += v * x[j]
		}
		out[i] = sum
	}
	return out
}

// AddVec returns v1 + v2.
func AddVec(v1, v2 Vector) Vector {
	out := make(Vector, len(v1))
	for i := range v1 {
		out[i] = v1[i] + v2[i]
	}
	return out
}

// SubVec returns v1 - v2.
func SubVec(v1, v2 Vector) Vector {
	out := make(Vector, len(v1))
	for i := range v1 {
		out[i] = v1[i] - v2[i]
	}
	return out
}

// SumVec returns the sum of the entries of v.
func SumVec(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum
}

// MinVec returns the smallest entry of v, or 0 for an empty vector.
func MinVec(v Vector) float64 {
	if len(v) == 0 {
		return 0
	}
	return slices.Min(v)
}

// MaxVec returns the largest entry of v, or 0 for an empty vector.
func MaxVec(v Vector) float64 {
	if len(v) == 0 {
		return 0
	}
	return slices.Max(v)
}

// Rebase returns a copy of v shifted so that its minimum is exactly zero.
func Rebase(v Vector) Vector {
	lo := MinVec(v)
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x - lo
	}
	return out
}

// Round rounds every entry of v to the given number of decimal places, half
// away from zero, and returns v. A negative places leaves v unchanged.
func Round(v Vector, places int) Vector {
	if places < 0 {
		return v
	}
	p := math.Pow10(places)
	for i, x := range v {
		r := math.Round(x*p) / p
		if r == 0 {
			r = 0 // normalize -0
		}
		v[i] = r
	}
	return v
}
