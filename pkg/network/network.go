package network

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Network.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Network.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Network.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Network.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the network.
// Metadata maps are never nil once added to a network.
type Metadata map[string]any

// Node is a vertex of the network together with its drawing coordinates.
//
// X is the horizontal coordinate that trophic leveling overwrites; Y is left
// to the host. Row is an optional discrete layer derived from the trophic
// height by [transform.AssignTrophicRows].
//
// [transform.AssignTrophicRows]: github.com/matzehuels/trophic/pkg/network/transform.AssignTrophicRows
type Node struct {
	ID    string   // Unique identifier
	Label string   // Display label (ID is used when empty)
	X     float64  // Horizontal coordinate
	Y     float64  // Vertical coordinate
	Row   int      // Discrete layer, 0 = lowest trophic level
	Meta  Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// DisplayLabel returns Label, or ID if Label is empty.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed connection between two nodes. Edges may form cycles
// and may repeat; trophic leveling treats repeats as a single unit edge.
type Edge struct {
	From string   // Source node ID
	To   string   // Target node ID
	Meta Metadata // Arbitrary key-value metadata (never nil after AddEdge)
}

// Network is a directed graph of positioned nodes. Nodes and edges keep their
// insertion order, which determines the order of trophic indices.
//
// The zero value is not usable - use New to create a valid Network.
// Network is not safe for concurrent use without external synchronization.
type Network struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	outgoing map[string][]string // nodeID -> target IDs
	incoming map[string][]string // nodeID -> source IDs
	meta     Metadata
}

// New creates an empty network with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Network {
	if meta == nil {
		meta = Metadata{}
	}
	return &Network{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		meta:     meta,
	}
}

// Meta returns the network-level metadata map.
func (g *Network) Meta() Metadata { return g.meta }

// AddNode adds a node to the network.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Network) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	g.nodes[n.ID] = &n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Self-loops and repeated edges are accepted.
func (g *Network) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Clone returns a deep copy of the network. Metadata maps are copied one
// level deep.
func (g *Network) Clone() *Network {
	out := New(maps.Clone(g.meta))
	for _, id := range g.order {
		n := *g.nodes[id]
		n.Meta = maps.Clone(n.Meta)
		_ = out.AddNode(n)
	}
	for _, e := range g.edges {
		e.Meta = maps.Clone(e.Meta)
		_ = out.AddEdge(e)
	}
	return out
}

// RemoveEdge removes every edge from→to. No error is returned if none exist.
func (g *Network) RemoveEdge(from, to string) {
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the network.
func (g *Network) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (g *Network) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the network.
func (g *Network) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the network, repeats included.
func (g *Network) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given ID and true, or nil and false.
func (g *Network) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Children returns the IDs of edge targets of id. Read-only.
func (g *Network) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of edge sources into id. Read-only.
func (g *Network) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Network) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Network) InDegree(id string) int { return len(g.incoming[id]) }

// Isolated returns the nodes that no edge touches, in insertion order.
// Such nodes cannot be leveled and keep their coordinates.
func (g *Network) Isolated() []*Node {
	var out []*Node
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 && len(g.incoming[id]) == 0 {
			out = append(out, g.nodes[id])
		}
	}
	return out
}

// SetRows updates the row assignments for nodes. Nodes not present in rows
// keep their current row.
func (g *Network) SetRows(rows map[string]int) {
	for id, row := range rows {
		if n, ok := g.nodes[id]; ok {
			n.Row = row
		}
	}
}

// RowIDs returns all distinct row indices in ascending order.
func (g *Network) RowIDs() []int {
	rows := make(map[int]struct{})
	for _, n := range g.nodes {
		rows[n.Row] = struct{}{}
	}
	return slices.Sorted(maps.Keys(rows))
}

// NodesInRow returns the nodes assigned to row, in insertion order.
func (g *Network) NodesInRow(row int) []*Node {
	var out []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; n.Row == row {
			out = append(out, n)
		}
	}
	return out
}

// NodeIDs extracts the ID from each node in a slice.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
