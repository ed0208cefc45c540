// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for concept queries (R3).
type QueryOptions struct {
	// Concept filters by exact concept name (R3.1).
	Concept string

	// FilterLevel enables the Level filter; the zero value leaves level
	// unconstrained so that level 0 remains expressible (R3.2).
	FilterLevel bool
	Level       int

	// RunID selects the run to query. Empty means the latest run (R3.3).
	RunID string

	// MaxResults limits result count. Zero uses the store default (R3.4).
	MaxResults int
}

// ConceptRow is one concept of an indexed run, with its prerequisite level
// and centrality score.
type ConceptRow struct {
	RunID     string  `json:"run_id" yaml:"run_id"`
	Concept   string  `json:"concept" yaml:"concept"`
	Frequency int     `json:"frequency" yaml:"frequency"`
	Spread    int     `json:"spread" yaml:"spread"`
	Level     int     `json:"level" yaml:"level"`
	Score     float64 `json:"score" yaml:"score"`
}

// EdgeRow is one prerequisite edge of an indexed run.
type EdgeRow struct {
	Prerequisite string `json:"prerequisite" yaml:"prerequisite"`
	Dependent    string `json:"dependent" yaml:"dependent"`
	Weight       int    `json:"weight" yaml:"weight"`
	Origin       string `json:"origin" yaml:"origin"`
}

// TranscriptHit is a full-text search match against indexed transcripts.
type TranscriptHit struct {
	VideoID string `json:"video_id" yaml:"video_id"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Retrieve queries a run's concepts with structured filters (R3). Results
// follow the leveling order: level ascending, then score descending, then
// concept name.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]ConceptRow, error) {
	runID := opts.RunID
	if runID == "" {
		latest, err := s.LatestRunID(ctx)
		if err != nil {
			return nil, err
		}
		runID = latest
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var qb strings.Builder
	qb.WriteString(
		`SELECT run_id, concept, frequency, spread, level, score
		FROM concepts
		WHERE run_id = ?`)
	args := []any{runID}

	if opts.Concept != "" {
		qb.WriteString(` AND concept = ?`)
		args = append(args, opts.Concept)
	}
	if opts.FilterLevel {
		qb.WriteString(` AND level = ?`)
		args = append(args, opts.Level)
	}

	qb.WriteString(` ORDER BY level, score DESC, concept LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying concepts: %w", err)
	}
	defer rows.Close()

	var results []ConceptRow
	for rows.Next() {
		var r ConceptRow
		if err := rows.Scan(&r.RunID, &r.Concept, &r.Frequency, &r.Spread, &r.Level, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning concept row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Edges returns the prerequisite edges of a run in (prerequisite,
// dependent) order. An empty runID means the latest run.
func (s *Store) Edges(ctx context.Context, runID string) ([]EdgeRow, error) {
	if runID == "" {
		latest, err := s.LatestRunID(ctx)
		if err != nil {
			return nil, err
		}
		runID = latest
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT prerequisite, dependent, weight, origin FROM edges
		 WHERE run_id = ? ORDER BY prerequisite, dependent`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var results []EdgeRow
	for rows.Next() {
		var r EdgeRow
		if err := rows.Scan(&r.Prerequisite, &r.Dependent, &r.Weight, &r.Origin); err != nil {
			return nil, fmt.Errorf("scanning edge row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// SearchTranscripts runs an FTS5 full-text query over indexed transcript
// text and returns matches ranked by relevance, each with a short snippet
// (R4.1, R4.2).
func (s *Store) SearchTranscripts(ctx context.Context, query string, maxResults int) ([]TranscriptHit, error) {
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT t.video_id, snippet(transcripts_fts, 0, '[', ']', '...', 12)
		 FROM transcripts_fts
		 JOIN transcripts t ON t.rowid = transcripts_fts.rowid
		 WHERE transcripts_fts MATCH ?
		 ORDER BY transcripts_fts.rank
		 LIMIT ?`, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching transcripts: %w", err)
	}
	defer rows.Close()

	var hits []TranscriptHit
	for rows.Next() {
		var h TranscriptHit
		if err := rows.Scan(&h.VideoID, &h.Snippet); err != nil {
			return nil, fmt.Errorf("scanning search hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}
