// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conceptmap builds a prerequisite-ordered knowledge map from a
// batch of documents with per-document concept observations.
// Implements: prd004-concept-map (R1-R7);
//
//	docs/ARCHITECTURE § Concept Dependency Map.
package conceptmap

import "github.com/pdiddy/knowledge-map/pkg/types"

// Default configuration values. Per prd004-concept-map R1.3.
const (
	DefaultTopN                  = 50
	DefaultCooccurrenceThreshold = 2
)

// Result is the complete output of one map build: the assembled dependency
// graph, its acyclic derivation, centrality scores, and the leveled concept
// ordering with its per-level grouping.
type Result struct {
	// Graph is the assembled dependency graph before cycle resolution.
	// Exposed for predecessor/successor inspection per concept.
	Graph *Graph

	// Acyclic is the cycle-resolved derivation of Graph.
	Acyclic *Graph

	// Scores are the centrality scores computed on Graph (pre-resolution).
	Scores map[string]float64

	// Ordered is the leveled concept sequence, level ascending then score
	// descending.
	Ordered []LeveledConcept

	// Groups re-buckets Ordered by level.
	Groups map[int][]LevelEntry
}

// Build runs the full map pipeline over an in-memory document batch:
// aggregation, pair analysis, graph assembly, centrality, cycle resolution,
// and leveling. It is a single-threaded batch computation; the caller owns
// the result exclusively. Zero documents or zero surviving concepts produce
// an empty but valid Result, never an error.
func Build(docs []types.Document, cfg types.MapConfig) *Result {
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	threshold := cfg.CooccurrenceThreshold
	if threshold <= 0 {
		threshold = DefaultCooccurrenceThreshold
	}

	ranked := Aggregate(docs, topN)

	candidates := make([]string, len(ranked))
	for i, agg := range ranked {
		candidates[i] = agg.Concept
	}
	m := newMatcher(candidates, cfg.StrictMatching)

	cooc := Cooccurrence(docs, m)
	causal := CausalVotes(docs, m)

	graph := Assemble(ranked, firstAppearance(docs), causal, cooc, threshold)
	scores := Centrality(graph)
	acyclic := ResolveCycles(graph)
	ordered := ComputeLevels(acyclic, scores)

	return &Result{
		Graph:   graph,
		Acyclic: acyclic,
		Scores:  scores,
		Ordered: ordered,
		Groups:  LevelGroups(ordered),
	}
}
