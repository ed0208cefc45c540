// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Export holds one run's knowledge map in a serializable form (R5.3).
type Export struct {
	RunID    string       `json:"run_id" yaml:"run_id"`
	Concepts []ConceptRow `json:"concepts" yaml:"concepts"`
	Edges    []EdgeRow    `json:"edges" yaml:"edges"`
}

const exportLimit = 100000

// ExportYAML writes a run's knowledge map to knowledge/index/export.yaml
// (R5.1). An empty runID exports the latest run.
func (s *Store) ExportYAML(ctx context.Context, runID string) error {
	export, err := s.exportRun(ctx, runID)
	if err != nil {
		return err
	}

	path := filepath.Join(s.knowledgeDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(export)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes a run's knowledge map to knowledge/index/export.json
// (R5.2). An empty runID exports the latest run.
func (s *Store) ExportJSON(ctx context.Context, runID string) error {
	export, err := s.exportRun(ctx, runID)
	if err != nil {
		return err
	}

	path := filepath.Join(s.knowledgeDir, indexDir, "export.json")
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRun(ctx context.Context, runID string) (*Export, error) {
	if runID == "" {
		latest, err := s.LatestRunID(ctx)
		if err != nil {
			return nil, err
		}
		runID = latest
	}

	concepts, err := s.Retrieve(ctx, QueryOptions{RunID: runID, MaxResults: exportLimit})
	if err != nil {
		return nil, fmt.Errorf("querying concepts for export: %w", err)
	}
	edges, err := s.Edges(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("querying edges for export: %w", err)
	}

	return &Export{RunID: runID, Concepts: concepts, Edges: edges}, nil
}
