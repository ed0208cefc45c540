// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConceptObservation records how often one concept appears in one document.
// Identity is the normalized concept label: case-folded, whitespace-collapsed,
// at most four words. Per prd003-extraction R1.2, prd004-concept-map R1.1.
type ConceptObservation struct {
	// Concept is the normalized concept label.
	Concept string `json:"concept" yaml:"concept"`

	// Frequency is the number of occurrences within the source document.
	Frequency int `json:"frequency" yaml:"frequency"`
}

// ConceptList is the extraction output for a single transcript: its ranked
// concept observations. Written to knowledge/concepts/[video_id].yaml.
// Per prd003-extraction R4.2.
type ConceptList struct {
	// VideoID identifies the source transcript.
	VideoID string `json:"video_id" yaml:"video_id"`

	// Concepts are the observations ordered by frequency descending.
	Concepts []ConceptObservation `json:"concepts" yaml:"concepts"`
}

// Document is the core input record for the dependency map builder: one
// source document with its text and per-document concept observations.
// Document order across the batch defines first-appearance indices.
// Per prd004-concept-map R1.1-R1.2.
type Document struct {
	// ID identifies the source document (the video ID for transcripts).
	ID string `json:"id" yaml:"id"`

	// Text is the cleaned document text the pair analyzers scan.
	Text string `json:"text" yaml:"text"`

	// Concepts are the per-document concept observations.
	Concepts []ConceptObservation `json:"concepts" yaml:"concepts"`
}
