package graph

// pairKey is a canonical unordered account pair (A <= B lexically).
type pairKey struct {
	A, B string
}

func makePairKey(u, v string) pairKey {
	if u <= v {
		return pairKey{A: u, B: v}
	}
	return pairKey{A: v, B: u}
}

// UndirectedGraph is the aggregated view of the account graph: one edge
// per unordered pair that transacted in either direction, weighted by
// the summed transfer volume regardless of direction. It is derived and
// read-only; rebuilt whenever the transaction set changes. Reserved for
// future community-style analysis.
type UndirectedGraph struct {
	order   []pairKey
	weights map[pairKey]float64
}

// NewUndirectedGraph returns an empty aggregated graph.
func NewUndirectedGraph() *UndirectedGraph {
	return &UndirectedGraph{
		weights: make(map[pairKey]float64),
	}
}

// AddWeight adds a transfer amount to the pair's running sum.
func (g *UndirectedGraph) AddWeight(u, v string, amount float64) {
	key := makePairKey(u, v)
	if _, ok := g.weights[key]; !ok {
		g.order = append(g.order, key)
	}
	g.weights[key] += amount
}

// Weight returns the aggregated volume between two accounts.
func (g *UndirectedGraph) Weight(u, v string) (float64, bool) {
	w, ok := g.weights[makePairKey(u, v)]
	return w, ok
}

// EdgeCount returns the number of unordered pairs with any volume.
func (g *UndirectedGraph) EdgeCount() int {
	return len(g.order)
}
