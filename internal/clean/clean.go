// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean normalizes raw transcript text for concept extraction.
// Implements: prd002-clean (R1, R2, R3);
//
//	docs/ARCHITECTURE § Cleaning.
package clean

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

const (
	// rawDir is the subdirectory under the transcripts base for raw records.
	rawDir = "raw"
	// cleanDir is the subdirectory under the transcripts base for cleaned records.
	cleanDir = "clean"
)

// fillerWords are removed from transcripts as whole words, case-insensitive
// (R1.4). Multi-word fillers come first so they are removed before any
// overlapping single word.
var fillerWords = []string{
	"you know", "sort of", "kind of", "i mean", "so yeah",
	"um", "uh", "erm", "ah", "oh", "like",
	"basically", "actually", "literally", "right", "okay", "ok",
}

var (
	bracketTagPattern = regexp.MustCompile(`\[[^\]]*\]`)
	htmlEntityPattern = regexp.MustCompile(`&\w+;`)
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	punctuationGap    = regexp.MustCompile(`\s+([.,!?;:])`)
	timestampLine     = regexp.MustCompile(`^[\d:.\-\s]+$`)

	fillerPatterns = compileFillers()

	unicodeReplacer = strings.NewReplacer(
		"’", "'", "‘", "'",
		"“", `"`, "”", `"`,
		"–", "-", "—", "-",
	)
)

func compileFillers() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, len(fillerWords))
	for i, f := range fillerWords {
		ps[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(f) + `\b`)
	}
	return ps
}

// CleanText normalizes raw transcript text (R1.1-R1.7): bracket tags like
// [Music] and [Applause], HTML entities and tags, unicode quotes and
// dashes, filler words, whitespace runs, spacing before punctuation, and
// lines consisting only of timestamps or numbers.
func CleanText(raw string) string {
	text := bracketTagPattern.ReplaceAllString(raw, "")

	text = htmlEntityPattern.ReplaceAllString(text, " ")
	text = htmlTagPattern.ReplaceAllString(text, "")

	text = unicodeReplacer.Replace(text)

	for _, p := range fillerPatterns {
		text = p.ReplaceAllString(text, "")
	}

	text = whitespacePattern.ReplaceAllString(text, " ")
	text = punctuationGap.ReplaceAllString(text, "$1")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !timestampLine.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// CleanTranscript populates the CleanedText field from FullText (R2.1).
func CleanTranscript(t *types.Transcript) {
	t.CleanedText = CleanText(t.FullText)
}

// BatchResult holds the outcome of a batch clean run.
type BatchResult struct {
	Cleaned int
	Skipped int
	Failed  int
}

// Total returns the total number of transcripts processed.
func (r BatchResult) Total() int {
	return r.Cleaned + r.Skipped + r.Failed
}

// HasFailures reports whether any transcripts failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// CleanBatch reads every raw transcript under the transcripts directory,
// cleans it, and writes the cleaned record under clean/. Records with an
// existing cleaned file are skipped (R3.2). Transcripts are processed in
// sorted filename order.
func CleanBatch(cfg types.CleanConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	rawPath := filepath.Join(cfg.TranscriptsDir, rawDir)
	entries, err := os.ReadDir(rawPath)
	if err != nil {
		return result, fmt.Errorf("reading raw transcripts directory: %w", err)
	}

	outDir := filepath.Join(cfg.TranscriptsDir, cleanDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("creating clean directory: %w", err)
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

		data, err := os.ReadFile(filepath.Join(rawPath, name))
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

		CleanTranscript(&t)

		out, err := yaml.Marshal(&t)
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

		fmt.Fprintf(w, "cleaned: %s\n", name)
		result.Cleaned++
	}

	fmt.Fprintf(w, "\nBatch summary: %d cleaned, %d skipped, %d failed (total: %d)\n",
		result.Cleaned, result.Skipped, result.Failed, result.Total())
	return result, nil
}
