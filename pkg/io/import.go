package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/trophic/pkg/network"
)

// Document is the serialized form of a network: the graph file format and
// the HTTP API body.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a serialized node. Row is omitted when zero.
type Node struct {
	ID    string           `json:"id" yaml:"id"`
	Label string           `json:"label,omitempty" yaml:"label,omitempty"`
	X     float64          `json:"x" yaml:"x"`
	Y     float64          `json:"y" yaml:"y"`
	Row   *int             `json:"row,omitempty" yaml:"row,omitempty"`
	Meta  network.Metadata `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Edge is a serialized edge.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// ReadJSON decodes a JSON graph document from r into a network.
//
// ReadJSON returns an error if the JSON is malformed, a node ID is empty or
// repeated, or an edge references an unknown node. The returned network is
// independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Network, error) {
	var data Document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data.Build()
}

// ReadYAML decodes a YAML graph document from r into a network.
// It applies the same validation as [ReadJSON].
func ReadYAML(r io.Reader) (*network.Network, error) {
	var data Document
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data.Build()
}

// ImportFile reads the graph document at path, choosing the decoder from the
// file extension.
func ImportFile(path string) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if IsYAML(path) {
		return ReadYAML(f)
	}
	return ReadJSON(f)
}

// IsYAML reports whether path has a YAML extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Build validates d and constructs the network it describes.
func (d Document) Build() (*network.Network, error) {
	g := network.New(nil)
	for _, n := range d.Nodes {
		nd := network.Node{ID: n.ID, Label: n.Label, X: n.X, Y: n.Y, Meta: n.Meta}
		if n.Row != nil {
			nd.Row = *n.Row
		}
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(network.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}
