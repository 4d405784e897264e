package trophic_test

import (
	"fmt"

	"github.com/matzehuels/trophic/pkg/trophic"
)

func ExampleCompute() {
	edges := []trophic.Edge[string]{
		{From: "grass", To: "rabbit"},
		{From: "rabbit", To: "fox"},
	}
	nodes := []trophic.Node[string]{
		{ID: "fox", X: 0},
		{ID: "rabbit", X: 40},
		{ID: "grass", X: 100},
	}

	placed, levels, err := trophic.Compute(edges, nodes)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range placed {
		h, _ := levels.Height(n.ID)
		fmt.Printf("%s level=%g x=%g\n", n.ID, h, n.X)
	}
	// Output:
	// grass level=0 x=0
	// rabbit level=1 x=50
	// fox level=2 x=100
}

func ExampleRescaleVec() {
	fmt.Println(trophic.RescaleVec([]float64{0, 1, 2}, 10, 40))
	// Output: [10 25 40]
}
