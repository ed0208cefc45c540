// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Segment is a single timed caption line from a video transcript.
// Per prd001-fetch R3.2.
type Segment struct {
	// Text is the caption text as returned by the captions API.
	Text string `json:"text" yaml:"text"`

	// Start is the segment start time in seconds from the beginning of the video.
	Start float64 `json:"start" yaml:"start"`

	// Duration is the segment duration in seconds.
	Duration float64 `json:"duration" yaml:"duration"`
}

// Transcript holds a fetched video transcript and its derived text forms.
// Per prd001-fetch R3.1-R3.4, prd002-clean R2.1.
type Transcript struct {
	// VideoID is the 11-character video identifier.
	VideoID string `json:"video_id" yaml:"video_id"`

	// SourceURL is the URL the transcript was requested for.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Segments are the timed caption lines in source order.
	Segments []Segment `json:"segments" yaml:"segments"`

	// FullText is the concatenation of all segment text, space-separated.
	FullText string `json:"full_text" yaml:"full_text"`

	// CleanedText is the normalized text produced by the cleaning stage.
	// Empty until the transcript has been cleaned.
	CleanedText string `json:"cleaned_text,omitempty" yaml:"cleaned_text,omitempty"`
}

// Text returns the best available text form: cleaned if present, raw otherwise.
func (t Transcript) Text() string {
	if t.CleanedText != "" {
		return t.CleanedText
	}
	return t.FullText
}
