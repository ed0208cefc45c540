// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"regexp"
	"strings"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

// causalTemplate is one linguistic dependency marker with its direction rule.
// For a sentence fragment "X <marker> Y": a forward template votes X → Y
// (X is the prerequisite), a reversed template votes Y → X (the dependent
// names itself first, as in "X depends on Y").
// Per prd004-concept-map R3.5-R3.6.
type causalTemplate struct {
	marker   string
	reversed bool
	re       *regexp.Regexp
}

// causalCatalogue is the fixed template set, tested in order. The first
// matching template per pair per sentence wins, so one linguistic signal
// never counts as several votes. Covers causation, enablement, foundational
// language, and reverse-dependency phrasing.
var causalCatalogue = buildCatalogue([]struct {
	marker   string
	reversed bool
}{
	{"leads to", false},
	{"causes", false},
	{"results in", false},
	{"enables", false},
	{"allows", false},
	{"introduces", false},
	{"is the basis for", false},
	{"is a foundation of", false},
	{"is needed for", false},
	{"is required for", false},
	{"depends on", true},
	{"requires", true},
	{"relies on", true},
	{"because of", true},
	{"due to", true},
	{"built on", true},
	{"based on", true},
	{"extends", true},
	{"uses", true},
})

func buildCatalogue(entries []struct {
	marker   string
	reversed bool
}) []causalTemplate {
	out := make([]causalTemplate, len(entries))
	for i, e := range entries {
		out[i] = causalTemplate{
			marker:   e.marker,
			reversed: e.reversed,
			re:       regexp.MustCompile(`\b` + regexp.QuoteMeta(e.marker) + `\b`),
		}
	}
	return out
}

// CausalVotes scans the document batch for causal-language patterns between
// candidate concepts and returns directed vote counts keyed by
// (prerequisite, dependent). This is the highest-confidence edge source:
// the assembler always prefers a causal vote over a co-occurrence inference
// for the same pair. Per prd004-concept-map R3.5-R3.8.
func CausalVotes(docs []types.Document, m *matcher) map[Pair]int {
	votes := make(map[Pair]int)
	for _, doc := range docs {
		for _, sentence := range splitSentences(doc.Text) {
			lower := strings.ToLower(sentence)
			present := m.presentIn(lower)
			if len(present) < 2 {
				continue
			}
			for i := 0; i < len(present); i++ {
				for j := i + 1; j < len(present); j++ {
					if from, to, ok := matchPair(lower, present[i], present[j]); ok {
						votes[Pair{from, to}]++
					}
				}
			}
		}
	}
	return votes
}

// matchPair tests one unordered concept pair against the catalogue in fixed
// order and both operand orientations, returning the voted direction of the
// first template that matches. Concepts are located as literal lowercase
// substrings around each marker occurrence.
func matchPair(lower, a, b string) (from, to string, ok bool) {
	for _, tmpl := range causalCatalogue {
		for _, span := range tmpl.re.FindAllStringIndex(lower, -1) {
			before, after := lower[:span[0]], lower[span[1]:]

			var left, right string
			switch {
			case strings.Contains(before, a) && strings.Contains(after, b):
				left, right = a, b
			case strings.Contains(before, b) && strings.Contains(after, a):
				left, right = b, a
			default:
				continue
			}

			if tmpl.reversed {
				return right, left, true
			}
			return left, right, true
		}
	}
	return "", "", false
}
