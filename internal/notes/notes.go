// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notes generates structured study notes from a leveled knowledge
// map via a Generative AI API. Implements: prd006-notes (R1-R3);
//
//	docs/ARCHITECTURE § Note Generation.
package notes

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

// notesFile is the output filename under the notes directory.
const notesFile = "knowledge-notes.md"

// DefaultExcerptChars caps the transcript excerpt included per document
// in the generation prompt.
const DefaultExcerptChars = 2000

// AIBackend abstracts the Generative AI API so tests can supply a mock.
// Per Strategy pattern (prd006-notes R2.1).
type AIBackend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// GenerateNotes builds the study-note prompt from the knowledge map and
// transcript excerpts, calls the AI backend with retry (R2.4), and writes
// the markdown result under the notes directory. It returns the path of
// the written file.
func GenerateNotes(ctx context.Context, backend AIBackend, result *conceptmap.Result, docs []types.Document, cfg types.NotesConfig, w io.Writer) (string, error) {
	prompt, err := renderPrompt(result, docs, cfg)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	fmt.Fprintf(w, "generating notes from %d documents, %d concepts\n",
		len(docs), len(result.Ordered))

	body, err := callWithRetry(ctx, backend, prompt, maxRetries)
	if err != nil {
		return "", fmt.Errorf("generating notes: %w", err)
	}

	if err := os.MkdirAll(cfg.NotesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating notes directory: %w", err)
	}

	path := filepath.Join(cfg.NotesDir, notesFile)
	content := "# Knowledge Map Study Notes\n\n" +
		"*Generated from video transcript analysis*\n\n---\n\n" + body
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing notes: %w", err)
	}

	fmt.Fprintf(w, "wrote notes: %s\n", path)
	return path, nil
}

// callWithRetry calls the AI backend with exponential backoff (R2.4).
func callWithRetry(ctx context.Context, backend AIBackend, prompt string, maxRetries int) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		out, err := backend.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
