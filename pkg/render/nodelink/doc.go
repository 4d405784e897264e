// Package nodelink renders leveled networks as node-link diagrams.
//
// Unlike hierarchical layouts, the node positions here are already decided:
// X comes from the trophic height and Y from the host. [ToDOT] pins each node
// with pos="x,y!" and selects the neato engine, which honors pinned
// positions and only routes the edges.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{ColorRows: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
