// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"fmt"
	"sort"
)

// EdgeOrigin records which analyzer produced a dependency edge.
// Per prd004-concept-map R4.2.
type EdgeOrigin string

const (
	// OriginCausal marks edges inferred from causal language patterns.
	OriginCausal EdgeOrigin = "causal"
	// OriginCooccurrence marks edges inferred from sentence co-occurrence
	// plus the foundational-score direction heuristic.
	OriginCooccurrence EdgeOrigin = "cooccurrence"
)

// Node is a concept vertex in the dependency graph.
type Node struct {
	// Concept is the normalized concept label.
	Concept string

	// Frequency is the concept's total frequency across the document batch.
	Frequency int

	// Spread is the number of distinct documents mentioning the concept.
	Spread int

	// FirstDoc is the index of the earliest document mentioning the concept.
	// Concepts absent from every document text carry a large sentinel so the
	// direction heuristic treats them as introduced last.
	FirstDoc int

	// Rank is the concept's position in the aggregation ranking (0 = most
	// important). Used as the deterministic iteration and tie-break order.
	Rank int
}

// Edge is a directed dependency edge: From is a prerequisite of To.
type Edge struct {
	From   string
	To     string
	Weight int
	Origin EdgeOrigin
}

// Graph is a directed graph over the top-N concept set. At most one edge
// exists per ordered concept pair. All iteration orders are fixed by node
// rank, so identical inputs produce identical traversals.
// Per prd004-concept-map R4.1-R4.4.
type Graph struct {
	nodes map[string]*Node
	order []string // concepts in rank order
	out   map[string]map[string]*Edge
	in    map[string]map[string]*Edge
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		out:   make(map[string]map[string]*Edge),
		in:    make(map[string]map[string]*Edge),
	}
}

// AddNode inserts a concept vertex. Rank is assigned from insertion order.
func (g *Graph) AddNode(concept string, frequency, spread, firstDoc int) {
	if _, ok := g.nodes[concept]; ok {
		return
	}
	g.nodes[concept] = &Node{
		Concept:   concept,
		Frequency: frequency,
		Spread:    spread,
		FirstDoc:  firstDoc,
		Rank:      len(g.order),
	}
	g.order = append(g.order, concept)
	g.out[concept] = make(map[string]*Edge)
	g.in[concept] = make(map[string]*Edge)
}

// AddEdge inserts a directed edge. Both endpoints must already be nodes;
// an unknown endpoint is a programming-contract violation of the assembler
// and panics rather than being silently dropped. An existing edge for the
// same ordered pair is overwritten.
func (g *Graph) AddEdge(from, to string, weight int, origin EdgeOrigin) {
	if _, ok := g.nodes[from]; !ok {
		panic(fmt.Sprintf("conceptmap: edge tail %q is not a graph node", from))
	}
	if _, ok := g.nodes[to]; !ok {
		panic(fmt.Sprintf("conceptmap: edge head %q is not a graph node", to))
	}
	e := &Edge{From: from, To: to, Weight: weight, Origin: origin}
	g.out[from][to] = e
	g.in[to][from] = e
}

// RemoveEdge deletes the edge from → to if present.
func (g *Graph) RemoveEdge(from, to string) {
	delete(g.out[from], to)
	delete(g.in[to], from)
}

// HasEdge reports whether the directed edge from → to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.out[from][to]
	return ok
}

// EdgeBetween returns the edge from → to, or nil if absent.
func (g *Graph) EdgeBetween(from, to string) *Edge {
	return g.out[from][to]
}

// Node returns the vertex for a concept, or nil if absent.
func (g *Graph) Node(concept string) *Node {
	return g.nodes[concept]
}

// Concepts returns all concepts in rank order.
func (g *Graph) Concepts() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// NumNodes returns the vertex count.
func (g *Graph) NumNodes() int { return len(g.order) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int {
	n := 0
	for _, m := range g.out {
		n += len(m)
	}
	return n
}

// Successors returns the concepts that depend on the given concept,
// in rank order.
func (g *Graph) Successors(concept string) []string {
	return g.sortedNeighbors(g.out[concept])
}

// Predecessors returns the prerequisite concepts of the given concept,
// in rank order.
func (g *Graph) Predecessors(concept string) []string {
	return g.sortedNeighbors(g.in[concept])
}

func (g *Graph) sortedNeighbors(m map[string]*Edge) []string {
	out := make([]string, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return g.nodes[out[i]].Rank < g.nodes[out[j]].Rank
	})
	return out
}

// Edges returns all edges ordered by tail rank, then head rank.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, from := range g.order {
		for _, to := range g.sortedNeighbors(g.out[from]) {
			edges = append(edges, *g.out[from][to])
		}
	}
	return edges
}

// Clone returns a deep copy sharing no mutable state with the receiver,
// so cycle resolution can prune the copy while centrality scores computed
// on the original stay valid. Per prd004-concept-map R5.3.
func (g *Graph) Clone() *Graph {
	h := NewGraph()
	for _, c := range g.order {
		n := g.nodes[c]
		h.AddNode(n.Concept, n.Frequency, n.Spread, n.FirstDoc)
	}
	for _, e := range g.Edges() {
		h.AddEdge(e.From, e.To, e.Weight, e.Origin)
	}
	return h
}
