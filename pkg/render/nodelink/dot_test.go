package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/trophic/pkg/network"
)

func leveled() *network.Network {
	g := network.New(nil)
	g.AddNode(network.Node{ID: "grass", X: 10, Y: 0, Row: 0})
	g.AddNode(network.Node{ID: "rabbit", Label: "Rabbit", X: 25, Y: 40, Row: 1})
	g.AddNode(network.Node{ID: "fox", X: 40, Y: 80, Row: 2, Meta: network.Metadata{"kind": "predator"}})
	g.AddEdge(network.Edge{From: "grass", To: "rabbit"})
	g.AddEdge(network.Edge{From: "rabbit", To: "fox"})
	return g
}

func TestToDOT_PinsPositions(t *testing.T) {
	dot := ToDOT(leveled(), Options{})

	for _, want := range []string{
		"digraph G",
		"layout=neato",
		`"grass" [label="grass", pos="10.00,0.00!"]`,
		`"rabbit" [label="Rabbit", pos="25.00,40.00!"]`,
		`"grass" -> "rabbit"`,
		`"rabbit" -> "fox"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_Scale(t *testing.T) {
	dot := ToDOT(leveled(), Options{Scale: 2})
	if !strings.Contains(dot, `pos="80.00,160.00!"`) {
		t.Errorf("ToDOT() scaled position missing:\n%s", dot)
	}
}

func TestToDOT_ColorRows(t *testing.T) {
	dot := ToDOT(leveled(), Options{ColorRows: true})
	if !strings.Contains(dot, `fillcolor="`+rowPalette[2]+`"`) {
		t.Errorf("ToDOT() row color missing:\n%s", dot)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fox", `"fox"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"two\nlines", `"two\nlines"`},
		{"crlf\r\nend", `"crlf\nend"`},
		{"ctl\x01", "\"ctl\x01\""},
		{"sep\u2028", "\"sep\u2028\""},
		{"héron", `"héron"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestToDOT_EscapesIdentifiers(t *testing.T) {
	g := network.New(nil)
	g.AddNode(network.Node{ID: `big "cat"`, Label: "lynx\u2028pardinus"})
	g.AddNode(network.Node{ID: "héron"})
	g.AddEdge(network.Edge{From: "héron", To: `big "cat"`})

	dot := ToDOT(g, Options{})
	for _, want := range []string{
		`"big \"cat\"" [label="lynx` + "\u2028" + `pardinus"`,
		`"héron" -> "big \"cat\""`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	for _, bad := range []string{`\u2028`, `\u00e9`, `\x`} {
		if strings.Contains(dot, bad) {
			t.Errorf("ToDOT() contains Go escape %q:\n%s", bad, dot)
		}
	}
}

func TestToDOT_DetailedLineBreaks(t *testing.T) {
	dot := ToDOT(leveled(), Options{Detailed: true})
	if !strings.Contains(dot, `label="fox\nrow: 2\nx: 40\nkind: predator"`) {
		t.Errorf("ToDOT() detailed label not escaped for DOT:\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	n := network.Node{ID: "fox", Row: 2, X: 40.5, Meta: network.Metadata{"kind": "predator"}}

	if got := fmtLabel(n, false); got != "fox" {
		t.Errorf("fmtLabel() simple = %q, want %q", got, "fox")
	}

	label := fmtLabel(n, true)
	for _, want := range []string{"fox\n", "row: 2", "x: 40.5", "kind: predator"} {
		if !strings.Contains(label, want) {
			t.Errorf("fmtLabel() detailed missing %q: %q", want, label)
		}
	}
}

func TestRowColor(t *testing.T) {
	if rowColor(0) != rowPalette[0] {
		t.Error("rowColor(0) should be first palette entry")
	}
	if rowColor(len(rowPalette)) != rowPalette[0] {
		t.Error("rowColor should wrap")
	}
	if rowColor(-1) != rowPalette[len(rowPalette)-1] {
		t.Error("rowColor should handle negative rows")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(leveled(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "Rabbit") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should fail on invalid DOT")
	}
}
