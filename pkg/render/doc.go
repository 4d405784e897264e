// Package render converts rendered graph diagrams between output formats.
//
// The [nodelink] subpackage produces SVG from a leveled network. [ToPDF] and
// [ToPNG] convert that SVG using the external rsvg-convert tool (from
// librsvg):
//
//	svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelink.Options{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/trophic/pkg/render/nodelink
package render
