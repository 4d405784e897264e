package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/trophic/pkg/network"
)

// WriteJSON encodes a network as an indented JSON graph document.
// Nodes and edges are written in insertion order; rows are included only
// when nonzero.
func WriteJSON(g *network.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes a network as a YAML graph document.
func WriteYAML(g *network.Network, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// MarshalJSON returns the JSON graph document for g. The encoding is
// deterministic for a given network, so it doubles as a content key.
func MarshalJSON(g *network.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFile writes a network to path, choosing the encoder from the file
// extension.
func ExportFile(g *network.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if IsYAML(path) {
		return WriteYAML(g, f)
	}
	return WriteJSON(g, f)
}

// ToDocument converts g to its serialized form, preserving insertion order.
func ToDocument(g *network.Network) Document {
	nodes := g.Nodes()
	edges := g.Edges()
	out := Document{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		nd := Node{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y}
		if len(n.Meta) > 0 {
			nd.Meta = n.Meta
		}
		if n.Row != 0 {
			row := n.Row
			nd.Row = &row
		}
		out.Nodes[i] = nd
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	return out
}
