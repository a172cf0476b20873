package graph

// TopologyNode is one account in the rendering projection.
type TopologyNode struct {
	ID string `json:"id"`
}

// TopologyLink is one transfer in the rendering projection. Parallel
// edges appear once each.
type TopologyLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Topology is a read-only projection of the built graph handed to the
// external rendering layer. It exposes no pattern or score information.
type Topology struct {
	Nodes []TopologyNode `json:"nodes"`
	Links []TopologyLink `json:"links"`
}

// Topology projects the directed multigraph into the node/link shape
// consumed by the visualization layer.
func (g *DirectedGraph) Topology() Topology {
	t := Topology{
		Nodes: make([]TopologyNode, 0, g.NodeCount()),
		Links: make([]TopologyLink, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		t.Nodes = append(t.Nodes, TopologyNode{ID: id})
	}
	for _, id := range g.Nodes() {
		for _, e := range g.OutEdges(id) {
			t.Links = append(t.Links, TopologyLink{Source: e.Sender, Target: e.Receiver})
		}
	}
	return t
}
