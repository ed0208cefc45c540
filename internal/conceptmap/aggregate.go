// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"sort"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

// AggregatedConcept is one concept's batch-wide observation totals.
// Per prd004-concept-map R2.1-R2.3.
type AggregatedConcept struct {
	// Concept is the normalized concept label.
	Concept string

	// Frequency is the sum of per-document frequencies.
	Frequency int

	// Spread is the number of distinct documents mentioning the concept.
	Spread int

	// Importance is Frequency × Spread. The product rewards breadth over
	// depth: a concept recurring across many documents outranks a concept
	// mentioned often in a single one.
	Importance int
}

// Aggregate merges per-document concept observations into the top-N ranked
// concept set. The ranking is by Importance descending with a stable
// tie-break on first-seen order across the batch, so repeated runs on the
// same input yield the identical ordering. Empty input yields an empty
// (non-nil error free) result. Per prd004-concept-map R2.1-R2.5.
func Aggregate(docs []types.Document, topN int) []AggregatedConcept {
	totals := make(map[string]*AggregatedConcept)
	var firstSeen []string

	for _, doc := range docs {
		seenHere := make(map[string]bool)
		for _, obs := range doc.Concepts {
			agg, ok := totals[obs.Concept]
			if !ok {
				agg = &AggregatedConcept{Concept: obs.Concept}
				totals[obs.Concept] = agg
				firstSeen = append(firstSeen, obs.Concept)
			}
			agg.Frequency += obs.Frequency
			if !seenHere[obs.Concept] {
				agg.Spread++
				seenHere[obs.Concept] = true
			}
		}
	}

	ranked := make([]AggregatedConcept, 0, len(firstSeen))
	for _, c := range firstSeen {
		agg := totals[c]
		agg.Importance = agg.Frequency * agg.Spread
		ranked = append(ranked, *agg)
	}

	// SliceStable preserves first-seen order among equal importances.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Importance > ranked[j].Importance
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// firstAppearance returns the index of the earliest document whose concept
// observations mention each concept. Document order defines the index.
// Per prd004-concept-map R4.1.
func firstAppearance(docs []types.Document) map[string]int {
	first := make(map[string]int)
	for i, doc := range docs {
		for _, obs := range doc.Concepts {
			if _, ok := first[obs.Concept]; !ok {
				first[obs.Concept] = i
			}
		}
	}
	return first
}
