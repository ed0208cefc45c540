package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-map/internal/notes"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

const defaultNotesModel = "claude-sonnet-4-5-20250929"

// Note generation calls can run long; the client timeout covers one full
// API round trip.
const notesTimeout = 5 * time.Minute

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate study notes from the knowledge map",
	Long: `Notes rebuilds the concept dependency map, renders a prompt from the
level hierarchy and transcript excerpts, and calls the Claude API to
generate structured study notes under output/notes/.

Requires an Anthropic API key in .secrets/anthropic-api-key or via --api-key.`,
	RunE: runNotes,
}

func init() {
	notesCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts (contains clean/)")
	notesCmd.Flags().String("knowledge-dir", "knowledge", "base directory for knowledge (contains concepts/)")
	notesCmd.Flags().String("notes-dir", "output/notes", "directory for generated study notes")
	notesCmd.Flags().String("model", defaultNotesModel, "Claude model identifier")
	notesCmd.Flags().String("api-key", "", "Anthropic API key (default: .secrets/anthropic-api-key)")
	notesCmd.Flags().Int("max-retries", 0, "retry attempts for failed API calls (0 = default 3)")
	notesCmd.Flags().Int("excerpt-chars", 0, "transcript excerpt length per video in the prompt (0 = default 2000)")
	notesCmd.Flags().Int("top-n", 0, "top-ranked concepts kept as graph nodes (0 = default 50)")
	notesCmd.Flags().Int("threshold", 0, "minimum sentence co-occurrence for an inferred edge (0 = default 2)")
	notesCmd.Flags().Bool("strict", false, "use word-boundary concept matching instead of substring matching")

	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	apiKeyFlag, _ := cmd.Flags().GetString("api-key")
	apiKey := secretDefault("anthropic-api-key", apiKeyFlag)
	if apiKey == "" {
		return fmt.Errorf("Anthropic API key required: place it in .secrets/anthropic-api-key or pass --api-key")
	}

	result, docs, err := buildMap(cmd)
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	notesDir, _ := cmd.Flags().GetString("notes-dir")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	excerptChars, _ := cmd.Flags().GetInt("excerpt-chars")

	cfg := types.NotesConfig{
		AIConfig: types.AIConfig{
			Model:      model,
			APIKey:     apiKey,
			MaxRetries: maxRetries,
		},
		NotesDir:     notesDir,
		ExcerptChars: excerptChars,
	}

	backend := &notes.ClaudeBackend{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: notesTimeout},
	}

	path, err := notes.GenerateNotes(context.Background(), backend, result, docs, cfg, os.Stdout)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
	return nil
}
