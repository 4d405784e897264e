// Package pkg provides the libraries behind the trophic tool.
//
// # Overview
//
// Trophic assigns every node of a directed network a trophic level, a height
// such that edges tend to point upward, and lays the network out so that
// lower levels sit to the left. The pkg directory is organized into four
// areas:
//
//  1. Core algorithm: [matrix] and [trophic]
//  2. Host model: [network], [network/transform] and [io]
//  3. Orchestration: [pipeline], [cache], [observability] and [errors]
//  4. Output: [render] and [render/nodelink]
//
// # Architecture
//
// The data flow through trophic:
//
//	graph document (JSON / YAML)
//	         ↓
//	    [io] package (decode into a network)
//	         ↓
//	    [trophic] package (adjacency → Laplacian solve → rescale)
//	         ↓
//	    [network/transform] package (optional rows)
//	         ↓
//	    [render/nodelink] package (pinned DOT → SVG/PDF/PNG)
//
// [pipeline] wires these stages together with caching, logging and
// observability hooks. The CLI and the HTTP API both go through it.
//
// # Quick Start
//
// Level a small food chain directly:
//
//	edges := []trophic.Edge[string]{
//	    {From: "grass", To: "rabbit"},
//	    {From: "rabbit", To: "fox"},
//	}
//	nodes := []trophic.Node[string]{
//	    {ID: "grass", X: 0}, {ID: "rabbit", X: 50}, {ID: "fox", X: 100},
//	}
//	placed, levels, err := trophic.Compute(edges, nodes)
//
// Or go through the pipeline with a cache:
//
//	g, _ := io.ImportFile("web.json")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Level(ctx, g, pipeline.DefaultOptions())
//	svg, _, err := runner.Render(ctx, res.Network, pipeline.RenderOptions{Format: pipeline.FormatSVG})
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/trophic/...            # Specific package
//	go test -run Example                 # Examples only
//
// [matrix]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/matrix
// [trophic]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/trophic
// [network]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/network
// [network/transform]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/network/transform
// [io]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/errors
// [render]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/trophic/pkg/render/nodelink
package pkg
