// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"regexp"
	"strings"
)

// splitSentences segments text into sentences on terminal punctuation.
// Empty segments are discarded. Per prd004-concept-map R3.1.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// matcher locates candidate concepts inside sentences. The default mode is
// loose lowercase substring containment, matching the reference heuristic;
// strict mode adds word-boundary checks to cut false positives such as
// "art" inside "parted". The candidate order is preserved in every result,
// keeping pair enumeration deterministic. Per prd004-concept-map R3.2-R3.3.
type matcher struct {
	concepts []string
	patterns []*regexp.Regexp // nil entries in loose mode
}

func newMatcher(concepts []string, strict bool) *matcher {
	m := &matcher{
		concepts: concepts,
		patterns: make([]*regexp.Regexp, len(concepts)),
	}
	if strict {
		for i, c := range concepts {
			m.patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(c)) + `\b`)
		}
	}
	return m
}

// presentIn returns the candidate concepts found in the sentence, in
// candidate order. The sentence should already be lowercased.
func (m *matcher) presentIn(lower string) []string {
	var present []string
	for i, c := range m.concepts {
		if m.patterns[i] != nil {
			if m.patterns[i].MatchString(lower) {
				present = append(present, c)
			}
			continue
		}
		if strings.Contains(lower, c) {
			present = append(present, c)
		}
	}
	return present
}
