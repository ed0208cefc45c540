// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads video captions and writes raw transcript records.
// Implements: prd001-fetch (R1-R4);
//
//	docs/ARCHITECTURE § Transcript Acquisition.
package fetch

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-map/internal/httputil"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

const rawDir = "raw"

// timedtextAPIBase is the captions endpoint. Declared as a var so tests
// can substitute an httptest server.
var timedtextAPIBase = "https://video.google.com/timedtext"

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Fetched     int
	Skipped     int
	Failed      int
	Transcripts []*types.Transcript
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Skipped + r.Failed
}

// HasFailures reports whether any URLs failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// timedtext XML structures.
type timedtextTranscript struct {
	Texts []timedtextText `xml:"text"`
}

type timedtextText struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// FetchTranscript resolves a single video URL, downloads its captions,
// and writes the raw transcript record. If the transcript already exists
// on disk, it skips the download (R2.4). The skipped return value
// indicates whether the download was skipped.
func FetchTranscript(ctx context.Context, client *http.Client, rawURL string, cfg types.FetchConfig, w io.Writer) (transcript *types.Transcript, skipped bool, err error) {
	videoID := ExtractVideoID(rawURL)
	if videoID == "" {
		return nil, false, fmt.Errorf("unrecognized video URL: %q", rawURL)
	}

	path := filepath.Join(cfg.TranscriptsDir, rawDir, videoID+".yaml")

	// Skip if the transcript already exists (R2.4).
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", videoID)
		t, readErr := ReadTranscript(path)
		if readErr != nil {
			t = &types.Transcript{VideoID: videoID, SourceURL: rawURL}
		}
		return t, true, nil
	}

	if err := os.MkdirAll(filepath.Join(cfg.TranscriptsDir, rawDir), 0o755); err != nil {
		return nil, false, fmt.Errorf("creating transcripts directory: %w", err)
	}

	fmt.Fprintf(w, "fetching: %s\n", videoID)

	t, err := downloadCaptions(ctx, client, videoID, rawURL, cfg)
	if err != nil {
		return nil, false, fmt.Errorf("fetching captions for %s: %w", videoID, err)
	}

	// Write the raw transcript record (R3.4).
	if err := writeTranscript(t, path); err != nil {
		return nil, false, fmt.Errorf("writing transcript for %s: %w", videoID, err)
	}
	return t, false, nil
}

// FetchBatch processes multiple video URLs, printing per-item status and
// returning a summary. It continues after individual failures (R4.2) and
// applies a delay between consecutive downloads (R4.3).
func FetchBatch(ctx context.Context, client *http.Client, urls []string, cfg types.FetchConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, u := range urls {
		if i > 0 && cfg.FetchDelay > 0 {
			time.Sleep(cfg.FetchDelay)
		}
		t, wasSkipped, err := FetchTranscript(ctx, client, u, cfg, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Fetched++
		}
		result.Transcripts = append(result.Transcripts, t)
	}
	fmt.Fprintf(w, "\nBatch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		result.Fetched, result.Skipped, result.Failed, result.Total())
	return result
}

// downloadCaptions fetches the timedtext segment list for videoID and
// assembles the transcript record. It sets User-Agent (R4.1) and retries
// throttled requests via httputil (R4.4).
func downloadCaptions(ctx context.Context, client *http.Client, videoID, sourceURL string, cfg types.FetchConfig) (*types.Transcript, error) {
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}

	q := url.Values{}
	q.Set("lang", lang)
	q.Set("v", videoID)
	apiURL := timedtextAPIBase + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("captions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("captions endpoint returned HTTP %d", resp.StatusCode)
	}

	var feed timedtextTranscript
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing captions response: %w", err)
	}
	if len(feed.Texts) == 0 {
		return nil, fmt.Errorf("no captions available for %s (lang %s)", videoID, lang)
	}

	t := &types.Transcript{VideoID: videoID, SourceURL: sourceURL}
	var parts []string
	for _, seg := range feed.Texts {
		// The endpoint double-escapes entities inside the CDATA text.
		text := html.UnescapeString(seg.Body)
		t.Segments = append(t.Segments, types.Segment{
			Text:     text,
			Start:    seg.Start,
			Duration: seg.Dur,
		})
		parts = append(parts, text)
	}
	t.FullText = strings.Join(parts, " ")
	return t, nil
}

// writeTranscript writes a Transcript record to a YAML file (R3.4).
func writeTranscript(t *types.Transcript, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadTranscript reads a Transcript record from a YAML file.
func ReadTranscript(path string) (*types.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t types.Transcript
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
