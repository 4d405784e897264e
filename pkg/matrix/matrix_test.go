package matrix

import (
	"math"
	"testing"
)

func TestUndirected(t *testing.T) {
	a := Matrix{
		{1, 1, 0},
		{0, 0, 0},
		{1, 0, 0},
	}
	got := Undirected(a)
	want := Matrix{
		{1, 1, 1},
		{1, 0, 0},
		{1, 0, 0},
	}
	if !equalMatrix(got, want) {
		t.Errorf("Undirected() = %v, want %v", got, want)
	}
	if a[1][0] != 0 {
		t.Error("Undirected() modified its input")
	}
}

func TestConnected(t *testing.T) {
	tests := []struct {
		name string
		a    Matrix
		want bool
	}{
		{"empty", Matrix{}, true},
		{"single edge", Matrix{{0, 1}, {1, 0}}, true},
		{"isolated node", Matrix{{0, 1, 0}, {1, 0, 0}, {0, 0, 0}}, false},
		{"self loop only", Matrix{{1}}, true},
		{"two components", Matrix{
			{0, 1, 0, 0},
			{1, 0, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Connected(tt.a); got != tt.want {
				t.Errorf("Connected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegrees(t *testing.T) {
	a := Matrix{
		{0, 1, 1},
		{0, 0, 1},
		{0, 0, 0},
	}
	if got, want := OutDegree(a), (Vector{2, 1, 0}); !equalVec(got, want) {
		t.Errorf("OutDegree() = %v, want %v", got, want)
	}
	if got, want := InDegree(a), (Vector{0, 1, 2}); !equalVec(got, want) {
		t.Errorf("InDegree() = %v, want %v", got, want)
	}
}

func TestMergeTranspose(t *testing.T) {
	a := Matrix{
		{0, 1, 0},
		{1, 0, 1},
		{0, 0, 1},
	}
	got := MergeTranspose(a)
	want := Matrix{
		{0, 1, 0},
		{1, 0, 1},
		{0, 1, 1},
	}
	if !equalMatrix(got, want) {
		t.Errorf("MergeTranspose() = %v, want %v", got, want)
	}
}

func TestDiagAndSubtract(t *testing.T) {
	d := Diag(Vector{1, 2})
	got := Subtract(d, Matrix{{0, 1}, {1, 0}})
	want := Matrix{{1, -1}, {-1, 2}}
	if !equalMatrix(got, want) {
		t.Errorf("Subtract(Diag) = %v, want %v", got, want)
	}
}

func TestVectorOps(t *testing.T) {
	v1, v2 := Vector{1, 2, 3}, Vector{3, 2, 1}
	if got := AddVec(v1, v2); !equalVec(got, Vector{4, 4, 4}) {
		t.Errorf("AddVec() = %v", got)
	}
	if got := SubVec(v1, v2); !equalVec(got, Vector{-2, 0, 2}) {
		t.Errorf("SubVec() = %v", got)
	}
	if got := SumVec(v1); got != 6 {
		t.Errorf("SumVec() = %v, want 6", got)
	}
}

func TestRebase(t *testing.T) {
	got := Rebase(Vector{-2, 0.5, 3})
	if !equalVec(got, Vector{0, 2.5, 5}) {
		t.Errorf("Rebase() = %v", got)
	}
	if len(Rebase(nil)) != 0 {
		t.Error("Rebase(nil) should be empty")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     Vector
		places int
		want   Vector
	}{
		{Vector{1.23456, 2.0006}, 3, Vector{1.235, 2.001}},
		{Vector{0.3333333}, 0, Vector{0}},
		{Vector{-0.0001}, 3, Vector{0}},
		{Vector{1.23456}, -1, Vector{1.23456}},
	}
	for _, tt := range tests {
		got := Round(append(Vector(nil), tt.in...), tt.places)
		if !equalVec(got, tt.want) {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
	if got := Round(Vector{-0.0001}, 3); math.Signbit(got[0]) {
		t.Error("Round() should not produce negative zero")
	}
}

func equalMatrix(a, b Matrix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalVec(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalVec(a, b Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}
