// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

// --- mock backend ---

type mockBackend struct {
	output  string
	err     error // forced error for retry testing
	calls   int
	prompts []string
}

func (m *mockBackend) Generate(_ context.Context, prompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

// failNTimesBackend fails the first N calls, then succeeds.
type failNTimesBackend struct {
	failures  int
	callCount int
	output    string
}

func (f *failNTimesBackend) Generate(_ context.Context, _ string) (string, error) {
	f.callCount++
	if f.callCount <= f.failures {
		return "", fmt.Errorf("transient error (call %d)", f.callCount)
	}
	return f.output, nil
}

func TestMain(m *testing.M) {
	// Override backoff to avoid real sleeps in retry tests.
	backoffBase = time.Millisecond
	os.Exit(m.Run())
}

func sampleResult() *conceptmap.Result {
	return &conceptmap.Result{
		Ordered: []conceptmap.LeveledConcept{
			{Level: 0, Concept: "variable", Score: 0.5},
			{Level: 0, Concept: "function", Score: 0.3},
			{Level: 1, Concept: "recursion", Score: 0.2},
		},
		Groups: map[int][]conceptmap.LevelEntry{
			0: {{Concept: "variable", Score: 0.5}, {Concept: "function", Score: 0.3}},
			1: {{Concept: "recursion", Score: 0.2}},
		},
	}
}

func sampleDocs() []types.Document {
	return []types.Document{
		{ID: "video000001", Text: "a variable stores a value"},
		{ID: "video000002", Text: "recursion depends on functions"},
	}
}

func testConfig(notesDir string) types.NotesConfig {
	return types.NotesConfig{
		AIConfig: types.AIConfig{Model: "test-model", MaxRetries: 3},
		NotesDir: notesDir,
	}
}

func TestGenerateNotesWritesFile(t *testing.T) {
	dir := t.TempDir()
	backend := &mockBackend{output: "## Level 0\n\nNotes body."}
	var buf bytes.Buffer

	path, err := GenerateNotes(context.Background(), backend, sampleResult(), sampleDocs(), testConfig(dir), &buf)
	if err != nil {
		t.Fatalf("GenerateNotes: %v", err)
	}
	if path != filepath.Join(dir, "knowledge-notes.md") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading notes: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Knowledge Map Study Notes") {
		t.Error("notes should start with the title header")
	}
	if !strings.Contains(content, "Notes body.") {
		t.Error("notes should contain the generated body")
	}
	if !strings.Contains(buf.String(), "wrote notes:") {
		t.Error("output should mention the written file")
	}
}

func TestGenerateNotesPromptContents(t *testing.T) {
	backend := &mockBackend{output: "ok"}
	var buf bytes.Buffer

	_, err := GenerateNotes(context.Background(), backend, sampleResult(), sampleDocs(), testConfig(t.TempDir()), &buf)
	if err != nil {
		t.Fatalf("GenerateNotes: %v", err)
	}
	if backend.calls != 1 {
		t.Fatalf("calls = %d, want 1", backend.calls)
	}

	prompt := backend.prompts[0]
	if !strings.Contains(prompt, "**Foundational (Level 0):** variable, function") {
		t.Errorf("prompt missing level 0 line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "**Intermediate (Level 1):** recursion") {
		t.Errorf("prompt missing level 1 line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "--- Video 1 (video000001) ---") {
		t.Error("prompt missing first excerpt header")
	}
	if !strings.Contains(prompt, "a variable stores a value") {
		t.Error("prompt missing first excerpt text")
	}
}

func TestGenerateNotesTruncatesExcerpts(t *testing.T) {
	backend := &mockBackend{output: "ok"}
	cfg := testConfig(t.TempDir())
	cfg.ExcerptChars = 10

	docs := []types.Document{{ID: "video000001", Text: strings.Repeat("x", 100)}}
	var buf bytes.Buffer
	if _, err := GenerateNotes(context.Background(), backend, sampleResult(), docs, cfg, &buf); err != nil {
		t.Fatalf("GenerateNotes: %v", err)
	}

	if strings.Contains(backend.prompts[0], strings.Repeat("x", 11)) {
		t.Error("excerpt should be truncated to ExcerptChars")
	}
	if !strings.Contains(backend.prompts[0], strings.Repeat("x", 10)) {
		t.Error("excerpt should keep the leading ExcerptChars characters")
	}
}

func TestGenerateNotesRetriesTransientFailures(t *testing.T) {
	backend := &failNTimesBackend{failures: 2, output: "eventually"}
	var buf bytes.Buffer

	path, err := GenerateNotes(context.Background(), backend, sampleResult(), sampleDocs(), testConfig(t.TempDir()), &buf)
	if err != nil {
		t.Fatalf("GenerateNotes: %v", err)
	}
	if backend.callCount != 3 {
		t.Errorf("callCount = %d, want 3", backend.callCount)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "eventually") {
		t.Error("notes should contain the eventual response")
	}
}

func TestGenerateNotesExhaustsRetries(t *testing.T) {
	backend := &mockBackend{err: fmt.Errorf("permanent failure")}
	var buf bytes.Buffer

	_, err := GenerateNotes(context.Background(), backend, sampleResult(), sampleDocs(), testConfig(t.TempDir()), &buf)
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	// 1 initial + 3 retries = 4 total calls.
	if backend.calls != 4 {
		t.Errorf("calls = %d, want 4", backend.calls)
	}
}

func TestLevelLabel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Foundational"},
		{1, "Intermediate"},
		{2, "Advanced"},
		{3, "Level 3"},
		{7, "Level 7"},
	}
	for _, tt := range tests {
		if got := levelLabel(tt.level); got != tt.want {
			t.Errorf("levelLabel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

// --- Claude backend ---

func TestClaudeBackendGenerate(t *testing.T) {
	var gotReq claudeRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, `{"content":[{"type":"text","text":"## Notes\n"},{"type":"text","text":"body"}]}`)
	}))
	defer ts.Close()

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = orig }()

	backend := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	out, err := backend.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "## Notes\nbody" {
		t.Errorf("out = %q", out)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("request model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "the prompt" {
		t.Errorf("request messages = %+v", gotReq.Messages)
	}
}

func TestClaudeBackendGenerateHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = orig }()

	backend := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	_, err := backend.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for HTTP 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error = %q, want mention of 503", err.Error())
	}
}

func TestClaudeBackendGenerateEmptyContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":[]}`)
	}))
	defer ts.Close()

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = orig }()

	backend := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	_, err := backend.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}
