package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/trophic/pkg/network"
	"github.com/matzehuels/trophic/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the row, coordinates and metadata in node labels.
	// When false, only the display label is shown.
	Detailed bool

	// Scale multiplies node coordinates before they are pinned. Zero means 1.
	Scale float64

	// ColorRows fills nodes by their row so trophic layers stand out.
	ColorRows bool
}

// rowPalette cycles through light fills by row.
var rowPalette = []string{
	"#e8f5e9", "#fff3e0", "#e3f2fd", "#fce4ec", "#ede7f6", "#f1f8e9",
}

// ToDOT converts a network to Graphviz DOT with every node pinned at its
// (X, Y) coordinates. The graph is laid out by neato, which keeps pinned
// positions and only routes edges. Coordinates are in points.
func ToDOT(g *network.Network, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(*n, fmtLabel(*n, opts.Detailed), scale, opts.ColorRows)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n network.Node, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}

	parts := []string{
		fmt.Sprintf("row: %d", n.Row),
		"x: " + strconv.FormatFloat(n.X, 'f', -1, 64),
	}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n network.Node, label string, scale float64, colorRows bool) []string {
	attrs := []string{
		"label=" + quote(label),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.X*scale), fmtCoord(n.Y*scale)),
	}
	if colorRows {
		attrs = append(attrs, "fillcolor="+quote(rowColor(n.Row)))
	}
	return attrs
}

// dotEscaper escapes a DOT double-quoted string. Newlines become the \n
// line-break escape that Graphviz understands in labels.
var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// quote returns s as a DOT double-quoted string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func rowColor(row int) string {
	i := row % len(rowPalette)
	if i < 0 {
		i += len(rowPalette)
	}
	return rowPalette[i]
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the viewBox starts at the
// origin and explicit pixel dimensions match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
