// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import "sort"

// LeveledConcept is one concept with its prerequisite level and centrality
// score. Level 0 means the concept has no incoming prerequisite edges in
// the acyclic graph; every surviving edge A → B satisfies
// level(A) < level(B). Per prd004-concept-map R7.1-R7.3.
type LeveledConcept struct {
	Level   int     `json:"level" yaml:"level"`
	Concept string  `json:"concept" yaml:"concept"`
	Score   float64 `json:"score" yaml:"score"`
}

// LevelEntry is a concept/score pair inside one level group.
type LevelEntry struct {
	Concept string  `json:"concept" yaml:"concept"`
	Score   float64 `json:"score" yaml:"score"`
}

// ComputeLevels topologically orders the acyclic graph and assigns each
// concept the longest path length from any root: roots get level 0, every
// other node gets one more than the maximum of its predecessors. Scores
// come from the centrality pass over the original graph — intentionally,
// so a concept keeps its raw importance even when cycle resolution pruned
// an edge touching it. Output is sorted by level ascending, score
// descending, with aggregation rank as the final tie-break so the sequence
// is byte-identical across runs. Per prd004-concept-map R7.1-R7.4.
func ComputeLevels(dag *Graph, scores map[string]float64) []LeveledConcept {
	levels := make(map[string]int, dag.NumNodes())

	// Kahn's algorithm seeded and advanced in rank order.
	indegree := make(map[string]int, dag.NumNodes())
	var queue []string
	for _, c := range dag.Concepts() {
		indegree[c] = len(dag.Predecessors(c))
		if indegree[c] == 0 {
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		level := 0
		for _, p := range dag.Predecessors(c) {
			if levels[p]+1 > level {
				level = levels[p] + 1
			}
		}
		levels[c] = level

		for _, next := range dag.Successors(c) {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	ordered := make([]LeveledConcept, 0, len(levels))
	for _, c := range dag.Concepts() {
		ordered = append(ordered, LeveledConcept{
			Level:   levels[c],
			Concept: c,
			Score:   scores[c],
		})
	}

	rank := func(c string) int { return dag.Node(c).Rank }
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Level != ordered[j].Level {
			return ordered[i].Level < ordered[j].Level
		}
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return rank(ordered[i].Concept) < rank(ordered[j].Concept)
	})
	return ordered
}

// LevelGroups re-buckets the ordered sequence by level. The per-level order
// is exactly the order of the input sequence; no additional computation
// happens here. Per prd004-concept-map R7.5.
func LevelGroups(ordered []LeveledConcept) map[int][]LevelEntry {
	groups := make(map[int][]LevelEntry)
	for _, lc := range ordered {
		groups[lc.Level] = append(groups[lc.Level], LevelEntry{Concept: lc.Concept, Score: lc.Score})
	}
	return groups
}
