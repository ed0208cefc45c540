// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract identifies candidate concepts in cleaned transcript text.
// Concepts are frequent unigrams and bigrams that survive stopword and
// quality filters. Implements: prd003-extraction (R1-R4);
//
//	docs/ARCHITECTURE § Extraction.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

const (
	// cleanDir is the subdirectory under the transcripts base for cleaned records.
	cleanDir = "clean"
	// conceptsDir is the subdirectory under the knowledge base for concept lists.
	conceptsDir = "concepts"

	// DefaultPerDocumentLimit caps the ranked concept list per transcript.
	DefaultPerDocumentLimit = 30

	// minWordLen is the minimum length for a word to count as a concept
	// candidate on its own or inside a bigram.
	minWordLen = 4
)

var numericPattern = regexp.MustCompile(`^\d+$`)

// validConcept applies the quality filters (R2.4): at least 3 characters,
// at most 4 words, not a stopword, not purely numeric.
func validConcept(concept string) bool {
	if len(concept) < 3 {
		return false
	}
	if strings.Count(concept, " ") > 3 {
		return false
	}
	if stopwords[concept] {
		return false
	}
	if numericPattern.MatchString(strings.ReplaceAll(concept, " ", "")) {
		return false
	}
	return true
}

// tokenize lowercases text and splits it into words, keeping internal
// hyphens and apostrophes.
func tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	var out []string
	for _, w := range words {
		w = strings.Trim(w, "'-")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// splitSentences breaks text on terminal punctuation. Bigrams never span
// a sentence boundary (R2.2).
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
}

// Extract returns the concepts found in text, ranked by frequency
// descending with alphabetical tie-break. Candidates are non-stopword
// unigrams of at least four characters (R2.1) and adjacent same-sentence
// word pairs where both words qualify (R2.2).
func Extract(text string) []types.ConceptObservation {
	counts := make(map[string]int)

	for _, sentence := range splitSentences(text) {
		words := tokenize(sentence)
		for i, w := range words {
			if !stopwords[w] && len(w) >= minWordLen && validConcept(w) {
				counts[w]++
			}
			if i+1 < len(words) {
				a, b := w, words[i+1]
				if stopwords[a] || stopwords[b] || len(a) < minWordLen || len(b) < minWordLen {
					continue
				}
				bigram := a + " " + b
				if validConcept(bigram) {
					counts[bigram]++
				}
			}
		}
	}

	concepts := make([]types.ConceptObservation, 0, len(counts))
	for c, n := range counts {
		concepts = append(concepts, types.ConceptObservation{Concept: c, Frequency: n})
	}
	sort.Slice(concepts, func(i, j int) bool {
		if concepts[i].Frequency != concepts[j].Frequency {
			return concepts[i].Frequency > concepts[j].Frequency
		}
		return concepts[i].Concept < concepts[j].Concept
	})
	return concepts
}

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Extracted int
	Skipped   int
	Failed    int
}

// Total returns the total number of transcripts processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Skipped + r.Failed
}

// HasFailures reports whether any transcripts failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ExtractBatch reads every cleaned transcript, extracts its ranked concept
// list, and writes it under the knowledge concepts directory. Transcripts
// with an existing concept list are skipped (R4.2). The per-document limit
// caps each written list (R4.1); zero means the default.
func ExtractBatch(cfg types.ExtractionConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	limit := cfg.PerDocumentLimit
	if limit == 0 {
		limit = DefaultPerDocumentLimit
	}

	cleanPath := filepath.Join(cfg.TranscriptsDir, cleanDir)
	entries, err := os.ReadDir(cleanPath)
	if err != nil {
		return result, fmt.Errorf("reading clean transcripts directory: %w", err)
	}

	outDir := filepath.Join(cfg.KnowledgeDir, conceptsDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("creating concepts directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		outPath := filepath.Join(outDir, name)
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			result.Skipped++
			continue
		}

		data, err := os.ReadFile(filepath.Join(cleanPath, name))
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		var t types.Transcript
		if err := yaml.Unmarshal(data, &t); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}

		concepts := Extract(t.Text())
		if limit > 0 && len(concepts) > limit {
			concepts = concepts[:limit]
		}

		list := types.ConceptList{VideoID: t.VideoID, Concepts: concepts}
		out, err := yaml.Marshal(&list)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "extracted: %s (%d concepts)\n", name, len(concepts))
		result.Extracted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d skipped, %d failed (total: %d)\n",
		result.Extracted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ReadConceptLists loads every concept list under the knowledge concepts
// directory in sorted filename order and pairs each with the transcript
// text it was extracted from. The resulting documents feed the map builder.
func ReadConceptLists(cfg types.ExtractionConfig) ([]types.Document, error) {
	outDir := filepath.Join(cfg.KnowledgeDir, conceptsDir)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("reading concepts directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []types.Document
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			return nil, fmt.Errorf("reading concept list %s: %w", name, err)
		}
		var list types.ConceptList
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing concept list %s: %w", name, err)
		}

		doc := types.Document{ID: list.VideoID, Concepts: list.Concepts}

		cleanData, err := os.ReadFile(filepath.Join(cfg.TranscriptsDir, cleanDir, name))
		if err == nil {
			var t types.Transcript
			if yaml.Unmarshal(cleanData, &t) == nil {
				doc.Text = t.Text()
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
