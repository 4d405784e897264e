// Package network provides the directed graph document that trophic
// leveling reads from and writes back to.
//
// # Overview
//
// A [Network] holds positioned nodes and directed edges in insertion order.
// Unlike a layered DAG, a network may contain cycles, self-loops and repeated
// edges: trophic levels are defined for any graph in which every node has at
// least one edge.
//
// # Basic Usage
//
//	g := network.New(nil)
//	g.AddNode(network.Node{ID: "grass", X: 0})
//	g.AddNode(network.Node{ID: "rabbit", X: 100})
//	g.AddEdge(network.Edge{From: "grass", To: "rabbit"})
//
// Node X coordinates define the horizontal range that computed heights are
// rescaled into. Nodes that no edge touches are reported by
// [Network.Isolated]; they are not leveled and keep their coordinates.
//
// # Rows
//
// Each node carries an integer Row. The transform subpackage derives rows
// from trophic heights so that rank-based renderers can group nodes of equal
// level.
//
// # Concurrency
//
// Network is not safe for concurrent modification. Readers may share a
// network as long as no goroutine mutates it.
package network
