package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
	"github.com/pdiddy/knowledge-map/internal/extract"
	"github.com/pdiddy/knowledge-map/internal/report"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Build the prerequisite-ordered concept dependency map",
	Long: `Map aggregates the per-transcript concept lists, infers prerequisite
edges from causal language and sentence co-occurrence, resolves cycles,
and assigns each concept a learning level. The leveled map is displayed
and written to knowledge/map.yaml.`,
	RunE: runMap,
}

func init() {
	mapCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts (contains clean/)")
	mapCmd.Flags().String("knowledge-dir", "knowledge", "base directory for knowledge (contains concepts/)")
	mapCmd.Flags().Int("top-n", 0, "top-ranked concepts kept as graph nodes (0 = default 50)")
	mapCmd.Flags().Int("threshold", 0, "minimum sentence co-occurrence for an inferred edge (0 = default 2)")
	mapCmd.Flags().Bool("strict", false, "use word-boundary concept matching instead of substring matching")
	mapCmd.Flags().String("tree", "", "show the prerequisite tree for one concept instead of the full map")

	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, args []string) error {
	result, docs, err := buildMap(cmd)
	if err != nil {
		return err
	}

	if concept, _ := cmd.Flags().GetString("tree"); concept != "" {
		tree, err := report.ConceptTree(result, concept)
		if err != nil {
			return err
		}
		fmt.Print(tree)
		return nil
	}

	report.Render(os.Stdout, result, len(docs))

	knowledgeDir, _ := cmd.Flags().GetString("knowledge-dir")
	path := filepath.Join(knowledgeDir, "map.yaml")
	if err := writeMapFile(result, len(docs), path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", path)
	return nil
}

// buildMap loads the per-transcript concept lists and runs the full map
// pipeline. Shared by the map, notes, and index store commands.
func buildMap(cmd *cobra.Command) (*conceptmap.Result, []types.Document, error) {
	docs, err := extract.ReadConceptLists(extractionConfig(cmd))
	if err != nil {
		return nil, nil, err
	}
	if len(docs) == 0 {
		return nil, nil, fmt.Errorf("no concept lists found: run extract first")
	}

	topN, _ := cmd.Flags().GetInt("top-n")
	threshold, _ := cmd.Flags().GetInt("threshold")
	strict, _ := cmd.Flags().GetBool("strict")

	cfg := types.MapConfig{
		TopN:                  topN,
		CooccurrenceThreshold: threshold,
		StrictMatching:        strict,
	}

	return conceptmap.Build(docs, cfg), docs, nil
}

// mapFile is the YAML shape of knowledge/map.yaml.
type mapFile struct {
	Documents int                         `yaml:"documents"`
	Concepts  []conceptmap.LeveledConcept `yaml:"concepts"`
	Edges     []conceptmap.Edge           `yaml:"edges"`
}

func writeMapFile(result *conceptmap.Result, docCount int, path string) error {
	out := mapFile{
		Documents: docCount,
		Concepts:  result.Ordered,
		Edges:     result.Acyclic.Edges(),
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling map: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating knowledge directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing map: %w", err)
	}
	return nil
}
