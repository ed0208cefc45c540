// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"strings"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

// Pair is an ordered concept pair used as a map key by both analyzers.
// The co-occurrence map stores it symmetrically; the causal vote map reads
// it as (prerequisite, dependent).
type Pair struct {
	A string
	B string
}

// Cooccurrence counts, for every candidate concept pair, the sentences in
// which both concepts appear. The returned map is symmetric: both orderings
// of a pair carry the same count, since no direction is inferred at this
// stage. Per prd004-concept-map R3.1-R3.4.
func Cooccurrence(docs []types.Document, m *matcher) map[Pair]int {
	counts := make(map[Pair]int)
	for _, doc := range docs {
		for _, sentence := range splitSentences(doc.Text) {
			present := m.presentIn(strings.ToLower(sentence))
			for i := 0; i < len(present); i++ {
				for j := i + 1; j < len(present); j++ {
					counts[Pair{present[i], present[j]}]++
					counts[Pair{present[j], present[i]}]++
				}
			}
		}
	}
	return counts
}
