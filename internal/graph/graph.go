package graph

import (
	"time"
)

// Edge is a single transfer in the directed multigraph. One edge exists
// per transaction row; parallel edges between the same ordered pair are
// preserved distinctly.
type Edge struct {
	Sender    string
	Receiver  string
	Amount    float64
	Timestamp time.Time
}

// DirectedGraph is the multi-edge directed account graph. Node set is
// the union of all sender/receiver ids observed, kept in first-seen
// order so iteration is deterministic within one analysis run.
type DirectedGraph struct {
	order []string
	index map[string]int

	out map[string][]Edge
	in  map[string][]Edge

	// Distinct successors per node in first-seen order. Parallel edges
	// collapse here; traversals that identify cycles/paths by node
	// sequence walk this adjacency instead of the raw edge lists.
	succ    map[string][]string
	succSet map[string]map[string]struct{}

	edgeCount int
}

// NewDirectedGraph returns an empty directed multigraph.
func NewDirectedGraph() *DirectedGraph {
	return &DirectedGraph{
		index:   make(map[string]int),
		out:     make(map[string][]Edge),
		in:      make(map[string][]Edge),
		succ:    make(map[string][]string),
		succSet: make(map[string]map[string]struct{}),
	}
}

func (g *DirectedGraph) ensureNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
}

// AddEdge records one transfer. Both endpoints are added to the node
// set if not yet present.
func (g *DirectedGraph) AddEdge(e Edge) {
	g.ensureNode(e.Sender)
	g.ensureNode(e.Receiver)

	g.out[e.Sender] = append(g.out[e.Sender], e)
	g.in[e.Receiver] = append(g.in[e.Receiver], e)
	g.edgeCount++

	set, ok := g.succSet[e.Sender]
	if !ok {
		set = make(map[string]struct{})
		g.succSet[e.Sender] = set
	}
	if _, seen := set[e.Receiver]; !seen {
		set[e.Receiver] = struct{}{}
		g.succ[e.Sender] = append(g.succ[e.Sender], e.Receiver)
	}
}

// Nodes returns all node ids in first-seen order. The returned slice is
// shared; callers must not mutate it.
func (g *DirectedGraph) Nodes() []string {
	return g.order
}

// NodeCount returns the number of distinct accounts in the graph.
func (g *DirectedGraph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of transfers, counting parallel edges.
func (g *DirectedGraph) EdgeCount() int {
	return g.edgeCount
}

// HasNode reports whether the account id appears in the graph.
func (g *DirectedGraph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// NodeIndex returns the insertion index of a node, or -1 if absent.
func (g *DirectedGraph) NodeIndex(id string) int {
	i, ok := g.index[id]
	if !ok {
		return -1
	}
	return i
}

// OutEdges returns the outgoing transfers of a node.
func (g *DirectedGraph) OutEdges(id string) []Edge {
	return g.out[id]
}

// InEdges returns the incoming transfers of a node.
func (g *DirectedGraph) InEdges(id string) []Edge {
	return g.in[id]
}

// Successors returns the distinct receivers reachable from id over one
// edge, in first-seen order.
func (g *DirectedGraph) Successors(id string) []string {
	return g.succ[id]
}

// Degree returns the total degree (in + out) of a node. Parallel edges
// each count once, so a pair that transacted five times contributes
// five to each endpoint.
func (g *DirectedGraph) Degree(id string) int {
	return len(g.out[id]) + len(g.in[id])
}
