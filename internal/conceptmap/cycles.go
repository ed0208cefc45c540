// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

// ResolveCycles derives an acyclic copy of the graph by repeatedly finding
// a directed cycle and removing its minimum-weight edge. The copy shares no
// mutable state with the input, which the centrality scorer may still read.
// Each removal strictly reduces the edge count, so the loop terminates; in
// the worst case every edge is removed. This is a greedy heuristic, not a
// minimum feedback arc set solver, and deliberately stays one: output parity
// with the reference heuristic matters more than minimal edits.
// Per prd004-concept-map R6.1-R6.4.
func ResolveCycles(g *Graph) *Graph {
	h := g.Clone()
	for {
		cycle := findCycle(h)
		if cycle == nil {
			break
		}

		weakest := cycle[0]
		for _, e := range cycle[1:] {
			if edgeWeight(e) < edgeWeight(weakest) {
				weakest = e
			}
		}
		h.RemoveEdge(weakest.From, weakest.To)
	}
	return h
}

// edgeWeight returns the edge weight, defaulting to 1 when unset.
func edgeWeight(e Edge) int {
	if e.Weight <= 0 {
		return 1
	}
	return e.Weight
}

// findCycle returns the edges of one directed cycle in path order, or nil
// if the graph is acyclic. The DFS visits roots and neighbors in rank
// order, so the same graph always yields the same cycle.
func findCycle(g *Graph) []Edge {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current DFS path
		black = 2 // fully explored
	)

	color := make(map[string]int, g.NumNodes())
	var path []string

	var visit func(c string) []Edge
	visit = func(c string) []Edge {
		color[c] = gray
		path = append(path, c)

		for _, next := range g.Successors(c) {
			switch color[next] {
			case gray:
				// Back edge: the cycle runs from next's position in the
				// path through c, then back to next.
				start := 0
				for i, p := range path {
					if p == next {
						start = i
						break
					}
				}
				var cycle []Edge
				for i := start; i < len(path)-1; i++ {
					cycle = append(cycle, *g.EdgeBetween(path[i], path[i+1]))
				}
				cycle = append(cycle, *g.EdgeBetween(c, next))
				return cycle
			case white:
				if cycle := visit(next); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		color[c] = black
		return nil
	}

	for _, c := range g.Concepts() {
		if color[c] == white {
			if cycle := visit(c); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
