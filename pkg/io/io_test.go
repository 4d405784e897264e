package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/trophic/pkg/network"
)

const sampleJSON = `{
  "nodes": [
    {"id": "grass", "x": 0, "y": 40},
    {"id": "rabbit", "label": "Rabbit", "x": 120, "y": 10, "meta": {"kind": "herbivore"}},
    {"id": "fox", "x": 300}
  ],
  "edges": [
    {"from": "grass", "to": "rabbit"},
    {"from": "rabbit", "to": "fox"}
  ]
}`

func TestReadJSON(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.Equal(t, []string{"grass", "rabbit", "fox"}, network.NodeIDs(g.Nodes()))

	rabbit, ok := g.Node("rabbit")
	require.True(t, ok)
	assert.Equal(t, "Rabbit", rabbit.Label)
	assert.Equal(t, 120.0, rabbit.X)
	assert.Equal(t, 10.0, rabbit.Y)
	assert.Equal(t, "herbivore", rabbit.Meta["kind"])
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate node", `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`, network.ErrDuplicateNodeID},
		{"unknown target", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, network.ErrUnknownTargetNode},
		{"empty id", `{"nodes":[{"id":""}]}`, network.ErrInvalidNodeID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := ReadJSON(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestWriteJSON_PreservesCoordinates(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	fox, _ := g.Node("fox")
	fox.X = 212.5
	fox.Row = 2

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(g, &buf))

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	got, _ := back.Node("fox")
	assert.Equal(t, 212.5, got.X)
	assert.Equal(t, 2, got.Row)
	assert.Equal(t, 2, back.EdgeCount())
}

func TestYAML(t *testing.T) {
	in := `
nodes:
  - id: a
    x: 10
  - id: b
    x: 40
    y: 3
edges:
  - from: a
    to: b
`
	g, err := ReadYAML(strings.NewReader(in))
	require.NoError(t, err)
	b, _ := g.Node("b")
	assert.Equal(t, 40.0, b.X)
	assert.Equal(t, 3.0, b.Y)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(g, &buf))
	assert.Contains(t, buf.String(), "from: a")

	back, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, back.EdgeCount())
}

func TestImportExportFile(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"graph.json", "graph.yaml", "graph.YML"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportFile(g, path), name)
		back, err := ImportFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, network.NodeIDs(g.Nodes()), network.NodeIDs(back.Nodes()), name)
	}

	_, err = ImportFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestMarshalJSON_Deterministic(t *testing.T) {
	g, err := ReadJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	a, err := MarshalJSON(g)
	require.NoError(t, err)
	b, err := MarshalJSON(g)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
