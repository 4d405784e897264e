// Package io provides JSON and YAML import and export for networks.
//
// # Overview
//
// The graph document carries everything trophic leveling needs: the edge
// list that defines the graph and the node coordinates that define the range
// computed heights are rescaled into.
//
// # JSON Format
//
// The format has two top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "grass", "x": 0, "y": 40},
//	    {"id": "rabbit", "label": "Rabbit", "x": 120, "y": 10},
//	    {"id": "fox", "x": 300, "y": 70}
//	  ],
//	  "edges": [
//	    {"from": "grass", "to": "rabbit"},
//	    {"from": "rabbit", "to": "fox"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - label: Display label (defaults to id)
//   - x, y: Coordinates (default 0); x spans the rescale range
//   - row: Discrete layer, written after row assignment
//   - meta: Freeform object carried through untouched
//
// # YAML
//
// The same document can be written as YAML with identical field names.
// [ImportFile] and [ExportFile] pick the format from the file extension:
// ".yaml" and ".yml" select YAML, anything else JSON.
//
// # Validation
//
// Readers reject duplicate node IDs and edges that reference unknown nodes.
// Errors are wrapped with the offending node or edge; use errors.Is with the
// sentinels of package network to inspect them.
//
// # Concurrency
//
// Readers create independent networks. Writers only read the network and are
// safe to call concurrently with other readers.
package io
