// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "knowledge-map/0.1"). Per prd001-fetch R4.1.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the transcript fetch stage.
// Per prd001-fetch R2.2, R4.1-R4.3.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// FetchDelay is the delay between consecutive transcript downloads (default 1s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// Language is the caption language requested from the captions API (default "en").
	Language string `json:"language" yaml:"language"`

	// TranscriptsDir is the base directory for transcripts (contains raw/, clean/).
	TranscriptsDir string `json:"transcripts_dir" yaml:"transcripts_dir"`
}

// CleanConfig holds settings for the transcript cleaning stage.
// Per prd002-clean R3.1.
type CleanConfig struct {
	// TranscriptsDir is the base directory for transcripts (contains raw/, clean/).
	TranscriptsDir string `json:"transcripts_dir" yaml:"transcripts_dir"`
}

// ExtractionConfig holds settings for the concept extraction stage.
// Per prd003-extraction R4.1-R4.3.
type ExtractionConfig struct {
	// TranscriptsDir is the base directory for transcripts (contains clean/).
	TranscriptsDir string `json:"transcripts_dir" yaml:"transcripts_dir"`

	// KnowledgeDir is the base directory for knowledge output (contains concepts/).
	KnowledgeDir string `json:"knowledge_dir" yaml:"knowledge_dir"`

	// PerDocumentLimit caps the ranked concept list written per transcript
	// (default 30). Zero keeps every concept.
	PerDocumentLimit int `json:"per_document_limit" yaml:"per_document_limit"`
}

// MapConfig holds settings for the concept dependency map builder.
// Per prd004-concept-map R1.3, R2.4, R2.5.
type MapConfig struct {
	// TopN is the number of top-ranked concepts kept as graph nodes (default 50).
	TopN int `json:"top_n" yaml:"top_n"`

	// CooccurrenceThreshold is the minimum sentence co-occurrence count for
	// an inferred edge between concepts with no causal evidence (default 2).
	CooccurrenceThreshold int `json:"cooccurrence_threshold" yaml:"cooccurrence_threshold"`

	// StrictMatching enables word-boundary matching when locating concepts
	// inside sentences. The default is loose substring matching, which keeps
	// parity with the reference heuristic at the cost of false positives.
	StrictMatching bool `json:"strict_matching" yaml:"strict_matching"`
}

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// NotesConfig holds settings for the study-note generation stage.
// Per prd006-notes R2.1-R2.4.
type NotesConfig struct {
	AIConfig `yaml:",inline"`

	// NotesDir is the directory for generated study notes (e.g. "output/notes/").
	NotesDir string `json:"notes_dir" yaml:"notes_dir"`

	// ExcerptChars is the number of leading transcript characters included
	// per document in the generation prompt (default 2000).
	ExcerptChars int `json:"excerpt_chars" yaml:"excerpt_chars"`
}

// StoreConfig holds settings for the knowledge-map index stage.
// Per prd005-index R1.2, R2.3.
type StoreConfig struct {
	// KnowledgeDir is the base directory for knowledge (contains concepts/, index/).
	KnowledgeDir string `json:"knowledge_dir" yaml:"knowledge_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	Clean      CleanConfig      `json:"clean" yaml:"clean"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Map        MapConfig        `json:"map" yaml:"map"`
	Notes      NotesConfig      `json:"notes" yaml:"notes"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
