// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-map/internal/report"
	"github.com/pdiddy/knowledge-map/internal/store"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the knowledge index (store, query, search, export)",
	Long: `Index manages a local SQLite index of knowledge-map runs. Use
subcommands to store a map build, query leveled concepts, full-text search
transcripts, or export a run.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Build the concept map and index it as a new run",
	Long: `Store rebuilds the concept dependency map from the extracted concept
lists and ingests it into the SQLite index as a new run: leveled concepts,
prerequisite edges, and FTS5-indexed transcript text.`,
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	result, docs, err := buildMap(cmd)
	if err != nil {
		return err
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.IndexRun(context.Background(), result, docs, os.Stdout)
	return err
}

// --- query subcommand ---

var indexQueryCmd = &cobra.Command{
	Use:   "query [concept]",
	Short: "Query leveled concepts from an indexed run",
	Long: `Query lists concepts from an indexed run ordered by level then score.
Filter by level (--level) or concept substring (positional or --concept).
Defaults to the most recent run; pick an earlier one with --run.`,
	RunE: runIndexQuery,
}

func runIndexQuery(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	concept, _ := cmd.Flags().GetString("concept")
	if concept == "" && len(args) > 0 {
		concept = strings.Join(args, " ")
	}
	level, _ := cmd.Flags().GetInt("level")
	runID, _ := cmd.Flags().GetString("run")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := store.QueryOptions{
		Concept:    concept,
		RunID:      runID,
		MaxResults: limit,
	}
	if level >= 0 {
		opts.FilterLevel = true
		opts.Level = level
	}

	rows, err := s.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(rows, jsonOutput)
}

func formatQueryOutput(rows []store.ConceptRow, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No concepts found.")
		return nil
	}

	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			report.LevelStyle(r.Level).Render(fmt.Sprintf("%d", r.Level)),
			r.Concept,
			fmt.Sprintf("%.4f", r.Score),
			fmt.Sprintf("%d", r.Frequency),
			fmt.Sprintf("%d", r.Spread),
		})
	}
	fmt.Print(report.RenderTable([]string{"Level", "Concept", "Score", "Frequency", "Videos"}, tableRows))

	fmt.Printf("\n%d concepts\n", len(rows))
	return nil
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search the indexed transcripts",
	Long: `Search runs an FTS5 full-text query over the indexed transcript text
and prints matching videos with highlighted snippets.`,
	RunE: runIndexSearch,
}

func runIndexSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	hits, err := s.SearchTranscripts(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	for _, hit := range hits {
		fmt.Println(report.Bold(hit.VideoID))
		fmt.Printf("  %s\n", hit.Snippet)
	}
	fmt.Printf("\n%d matches\n", len(hits))
	return nil
}

// --- edges subcommand ---

var indexEdgesCmd = &cobra.Command{
	Use:   "edges",
	Short: "List prerequisite edges from an indexed run",
	Long: `Edges lists the prerequisite edges of an indexed run ordered by concept
pair. Filter by inference origin (--origin causal or cooccurrence).`,
	RunE: runIndexEdges,
}

func runIndexEdges(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	runID, _ := cmd.Flags().GetString("run")
	origin, _ := cmd.Flags().GetString("origin")

	edges, err := s.Edges(context.Background(), runID)
	if err != nil {
		return err
	}
	if origin != "" {
		filtered := edges[:0]
		for _, e := range edges {
			if e.Origin == origin {
				filtered = append(filtered, e)
			}
		}
		edges = filtered
	}

	if len(edges) == 0 {
		fmt.Println("No edges found.")
		return nil
	}

	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, []string{
			e.Prerequisite,
			e.Dependent,
			fmt.Sprintf("%d", e.Weight),
			e.Origin,
		})
	}
	fmt.Print(report.RenderTable([]string{"Prerequisite", "Unlocks", "Weight", "Origin"}, rows))

	fmt.Printf("\n%d edges\n", len(edges))
	return nil
}

// --- runs subcommand ---

var indexRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List indexed knowledge-map runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		runs, err := s.Runs(context.Background())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("Index holds no runs.")
			return nil
		}

		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				r.ID,
				r.CreatedAt.Format(time.RFC3339),
				fmt.Sprintf("%d", r.Documents),
				fmt.Sprintf("%d", r.Concepts),
				fmt.Sprintf("%d", r.Edges),
			})
		}
		fmt.Print(report.RenderTable([]string{"Run", "Created", "Videos", "Concepts", "Edges"}, rows))
		return nil
	},
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an indexed run to YAML or JSON",
	Long: `Export writes a run's concepts and edges to knowledge/index/export.yaml
or export.json. Defaults to the most recent run.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	runID, _ := cmd.Flags().GetString("run")
	format, _ := cmd.Flags().GetString("format")

	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background(), runID); err != nil {
			return err
		}
		fmt.Println("Exported to knowledge/index/export.yaml")
	case "json":
		if err := s.ExportJSON(context.Background(), runID); err != nil {
			return err
		}
		fmt.Println("Exported to knowledge/index/export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*store.Store, error) {
	knowledgeDir, _ := cmd.Flags().GetString("knowledge-dir")
	if knowledgeDir == "" {
		knowledgeDir = "knowledge"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return store.NewStore(types.StoreConfig{
		KnowledgeDir: knowledgeDir,
		MaxResults:   maxResults,
	})
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("knowledge-dir", "knowledge", "base directory for knowledge (contains concepts/, index/)")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Store rebuilds the map, so it takes the map pipeline flags.
	indexStoreCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts (contains clean/)")
	indexStoreCmd.Flags().Int("top-n", 0, "top-ranked concepts kept as graph nodes (0 = default 50)")
	indexStoreCmd.Flags().Int("threshold", 0, "minimum sentence co-occurrence for an inferred edge (0 = default 2)")
	indexStoreCmd.Flags().Bool("strict", false, "use word-boundary concept matching instead of substring matching")

	// Query flags.
	indexQueryCmd.Flags().String("concept", "", "filter by concept substring")
	indexQueryCmd.Flags().Int("level", -1, "filter by prerequisite level (-1 = all levels)")
	indexQueryCmd.Flags().String("run", "", "run ID to query (default: most recent)")
	indexQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Search flags.
	indexSearchCmd.Flags().Int("limit", 0, "maximum matches (0 = use default)")

	// Edges flags.
	indexEdgesCmd.Flags().String("run", "", "run ID to list (default: most recent)")
	indexEdgesCmd.Flags().String("origin", "", "filter by inference origin: causal or cooccurrence")

	// Export flags.
	indexExportCmd.Flags().String("run", "", "run ID to export (default: most recent)")
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexQueryCmd)
	indexCmd.AddCommand(indexSearchCmd)
	indexCmd.AddCommand(indexEdgesCmd)
	indexCmd.AddCommand(indexRunsCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
