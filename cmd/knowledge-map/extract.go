package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-map/internal/extract"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Mine concept candidates from cleaned transcripts",
	Long: `Extract scans cleaned transcripts for concept candidates (frequent
unigrams and adjacent word pairs), ranks them by frequency, and writes one
concept list per transcript to knowledge/concepts/. Transcripts with an
existing concept list are skipped.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts (contains clean/)")
	extractCmd.Flags().String("knowledge-dir", "knowledge", "base directory for knowledge output (contains concepts/)")
	extractCmd.Flags().Int("limit", 0, "concepts kept per transcript (0 = default 30)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractionConfig(cmd)

	result, err := extract.ExtractBatch(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d transcript(s) failed extraction", result.Failed)
	}
	return nil
}

// extractionConfig builds the extraction stage config from flags shared by
// the extract, map, notes, and index commands.
func extractionConfig(cmd *cobra.Command) types.ExtractionConfig {
	transcriptsDir, _ := cmd.Flags().GetString("transcripts-dir")
	if transcriptsDir == "" {
		transcriptsDir = "transcripts"
	}
	knowledgeDir, _ := cmd.Flags().GetString("knowledge-dir")
	if knowledgeDir == "" {
		knowledgeDir = "knowledge"
	}
	limit, _ := cmd.Flags().GetInt("limit")

	return types.ExtractionConfig{
		TranscriptsDir:   transcriptsDir,
		KnowledgeDir:     knowledgeDir,
		PerDocumentLimit: limit,
	}
}
