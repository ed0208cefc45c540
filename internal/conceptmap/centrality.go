// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import "math"

const (
	dampingFactor  = 0.85
	maxIterations  = 100
	convergenceTol = 1e-6
)

// Centrality computes a PageRank-style importance score for every node via
// power iteration over the weighted directed graph. Edge weight acts as the
// transition-probability signal; a node's rank flows to its successors in
// proportion to edge weight. Scores sum to 1 across all nodes. An empty
// graph yields an empty map, and failure to converge within the iteration
// budget falls back to a uniform distribution rather than failing the
// pipeline. Per prd004-concept-map R5.1-R5.2.
func Centrality(g *Graph) map[string]float64 {
	n := g.NumNodes()
	if n == 0 {
		return map[string]float64{}
	}

	concepts := g.Concepts()
	index := make(map[string]int, n)
	for i, c := range concepts {
		index[c] = i
	}

	// Precompute per-node outgoing weight totals.
	outWeight := make([]float64, n)
	for _, e := range g.Edges() {
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		outWeight[index[e.From]] += float64(w)
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1.0 / float64(n)
	}

	base := (1.0 - dampingFactor) / float64(n)

	for iter := 0; iter < maxIterations; iter++ {
		next := make([]float64, n)

		// Dangling nodes spread their rank uniformly.
		var danglingMass float64
		for i := range rank {
			if outWeight[i] == 0 {
				danglingMass += rank[i]
			}
		}

		for _, e := range g.Edges() {
			w := e.Weight
			if w <= 0 {
				w = 1
			}
			from := index[e.From]
			next[index[e.To]] += dampingFactor * rank[from] * float64(w) / outWeight[from]
		}

		for i := range next {
			next[i] += base + dampingFactor*danglingMass/float64(n)
		}

		var delta float64
		for i := range next {
			delta += math.Abs(next[i] - rank[i])
		}
		rank = next

		if delta < convergenceTol {
			scores := make(map[string]float64, n)
			for i, c := range concepts {
				scores[c] = rank[i]
			}
			return scores
		}
	}

	// Did not converge: uniform fallback, never an error.
	scores := make(map[string]float64, n)
	for _, c := range concepts {
		scores[c] = 1.0 / float64(n)
	}
	return scores
}
