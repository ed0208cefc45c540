package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-map/internal/clean"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize raw transcripts for concept extraction",
	Long: `Clean reads raw transcript YAML from transcripts/raw/, strips caption
artifacts (bracketed tags, HTML entities, timestamps, filler words), and
writes cleaned transcripts to transcripts/clean/. Already-cleaned
transcripts are skipped.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	transcriptsDir, _ := cmd.Flags().GetString("transcripts-dir")

	cfg := types.CleanConfig{
		TranscriptsDir: transcriptsDir,
	}

	result, err := clean.CleanBatch(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d transcript(s) failed cleaning", result.Failed)
	}
	return nil
}
