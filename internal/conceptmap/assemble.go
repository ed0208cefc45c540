// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

// unseenDocIndex is the first-appearance sentinel for concepts missing from
// every document's observation list. The direction heuristic treats such
// concepts as introduced last. Per prd004-concept-map R4.1.
const unseenDocIndex = 1 << 20

// causalWeightFactor triples the weight of causal evidence relative to raw
// co-occurrence counts. Per prd004-concept-map R4.2.
const causalWeightFactor = 3

// Assemble combines the aggregated concept ranking, co-occurrence counts,
// and causal votes into the dependency graph. Causal votes are authoritative:
// a pair with causal evidence never receives a co-occurrence edge. Remaining
// pairs at or above the co-occurrence threshold get a direction from the
// foundational score. Per prd004-concept-map R4.1-R4.5.
func Assemble(ranked []AggregatedConcept, firstDoc map[string]int, causal, cooc map[Pair]int, threshold int) *Graph {
	g := NewGraph()
	for _, agg := range ranked {
		first, ok := firstDoc[agg.Concept]
		if !ok {
			first = unseenDocIndex
		}
		g.AddNode(agg.Concept, agg.Frequency, agg.Spread, first)
	}

	// Causal edges first. When both directions collected votes, the larger
	// count wins; a tie keeps the direction whose prerequisite comes first
	// in the enumeration order.
	concepts := g.Concepts()
	for i := 0; i < len(concepts); i++ {
		for j := i + 1; j < len(concepts); j++ {
			a, b := concepts[i], concepts[j]
			ab, ba := causal[Pair{a, b}], causal[Pair{b, a}]
			switch {
			case ab == 0 && ba == 0:
				continue
			case ab >= ba:
				g.AddEdge(a, b, ab*causalWeightFactor, OriginCausal)
			default:
				g.AddEdge(b, a, ba*causalWeightFactor, OriginCausal)
			}
		}
	}

	// Co-occurrence edges for every pair not already connected causally.
	for i := 0; i < len(concepts); i++ {
		for j := i + 1; j < len(concepts); j++ {
			a, b := concepts[i], concepts[j]
			if g.HasEdge(a, b) || g.HasEdge(b, a) {
				continue
			}
			count := cooc[Pair{a, b}]
			if count < threshold {
				continue
			}
			if foundationalScore(g.Node(b)) > foundationalScore(g.Node(a)) {
				a, b = b, a
			}
			g.AddEdge(a, b, count, OriginCooccurrence)
		}
	}

	return g
}

// foundationalScore estimates how foundational a concept is: broadly spread,
// frequent, introduced early. The spread term dominates by design; the
// weighting constants are tunable policy, not derived.
// Per prd004-concept-map R4.4.
func foundationalScore(n *Node) int {
	return n.Spread*50 + n.Frequency - n.FirstDoc*10
}
