// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists knowledge-map runs and builds a retrieval index.
// Implements: prd005-index (R1-R5);
//
//	docs/ARCHITECTURE § Index.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "knowledge.db"
)

// Store manages the knowledge-map SQLite database.
type Store struct {
	db           *sql.DB
	knowledgeDir string
	maxResults   int
}

// NewStore opens or creates the SQLite database at
// knowledgeDir/index/knowledge.db. It creates the schema if it does not
// exist (R1.2, R1.3).
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.KnowledgeDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:           db,
		knowledgeDir: cfg.KnowledgeDir,
		maxResults:   maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			documents INTEGER,
			concepts INTEGER,
			edges INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS transcripts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			video_id TEXT NOT NULL UNIQUE,
			source_url TEXT,
			content TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS concepts (
			run_id TEXT NOT NULL REFERENCES runs(id),
			concept TEXT NOT NULL,
			frequency INTEGER,
			spread INTEGER,
			level INTEGER,
			score REAL,
			PRIMARY KEY (run_id, concept)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_concepts_level ON concepts(run_id, level)`,
		`CREATE TABLE IF NOT EXISTS edges (
			run_id TEXT NOT NULL REFERENCES runs(id),
			prerequisite TEXT NOT NULL,
			dependent TEXT NOT NULL,
			weight INTEGER,
			origin TEXT,
			PRIMARY KEY (run_id, prerequisite, dependent)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='transcripts_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE transcripts_fts USING fts5(content, content=transcripts, content_rowid=rowid)`,
			`CREATE TRIGGER transcripts_ai AFTER INSERT ON transcripts BEGIN
				INSERT INTO transcripts_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER transcripts_ad AFTER DELETE ON transcripts BEGIN
				INSERT INTO transcripts_fts(transcripts_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER transcripts_au AFTER UPDATE ON transcripts BEGIN
				INSERT INTO transcripts_fts(transcripts_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO transcripts_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Run describes one indexed knowledge-map build.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Documents int       `json:"documents" yaml:"documents"`
	Concepts  int       `json:"concepts" yaml:"concepts"`
	Edges     int       `json:"edges" yaml:"edges"`
}

// IndexRun persists a knowledge-map build as a new run (R2.1-R2.4). The
// run ID is a fresh UUID. Transcript text is upserted into the full-text
// index; concepts and edges are stored under the run. Returns the run ID.
func (s *Store) IndexRun(ctx context.Context, result *conceptmap.Result, docs []types.Document, w io.Writer) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	edges := result.Acyclic.Edges()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, documents, concepts, edges) VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339Nano),
		len(docs), len(result.Ordered), len(edges),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, d := range docs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transcripts (video_id, source_url, content) VALUES (?, ?, ?)
			 ON CONFLICT(video_id) DO UPDATE SET source_url=excluded.source_url, content=excluded.content`,
			d.ID, "", d.Text,
		)
		if err != nil {
			return "", fmt.Errorf("upserting transcript %s: %w", d.ID, err)
		}
	}

	conceptStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO concepts (run_id, concept, frequency, spread, level, score)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing concept insert: %w", err)
	}
	defer conceptStmt.Close()

	for _, lc := range result.Ordered {
		n := result.Graph.Node(lc.Concept)
		frequency, spread := 0, 0
		if n != nil {
			frequency, spread = n.Frequency, n.Spread
		}
		if _, err := conceptStmt.ExecContext(ctx,
			runID, lc.Concept, frequency, spread, lc.Level, lc.Score,
		); err != nil {
			return "", fmt.Errorf("inserting concept %s: %w", lc.Concept, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO edges (run_id, prerequisite, dependent, weight, origin)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range edges {
		if _, err := edgeStmt.ExecContext(ctx,
			runID, e.From, e.To, e.Weight, string(e.Origin),
		); err != nil {
			return "", fmt.Errorf("inserting edge %s -> %s: %w", e.From, e.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}

	fmt.Fprintf(w, "indexed run %s (%d documents, %d concepts, %d edges)\n",
		runID, len(docs), len(result.Ordered), len(edges))
	return runID, nil
}

// Runs lists indexed runs, newest first (R2.5).
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, documents, concepts, edges FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &created, &r.Documents, &r.Concepts, &r.Edges); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRunID returns the ID of the most recent run, or an error when the
// index holds no runs.
func (s *Store) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("index holds no runs")
	}
	if err != nil {
		return "", fmt.Errorf("querying latest run: %w", err)
	}
	return id, nil
}
