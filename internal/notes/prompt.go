// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notes

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

// notesPromptTmpl is the prompt sent to the AI API. It presents the
// prerequisite hierarchy and transcript excerpts, then asks for leveled
// study notes in markdown. Per prd006-notes R2.2, R2.3.
var notesPromptTmpl = template.Must(template.New("notes").Parse(`You are an expert educator. Transcripts from {{.DocCount}} videos have been analyzed and their key concepts organized by prerequisite level.

## Concept Hierarchy (Prerequisite Order)

{{.Hierarchy}}

## Transcript Excerpts

{{.Excerpts}}

## Your Task

Generate comprehensive, structured study notes based on the above. Follow these rules:

1. Organize by prerequisite level, starting with foundational concepts and building up to advanced ones.
2. For each concept, provide a clear one-or-two sentence definition, why it matters and how it connects to other concepts, and a brief example where applicable.
3. Show connections between concepts across levels (e.g. "Understanding X is needed for Y").
4. Add a summary section at the end with key takeaways.
5. Use markdown formatting with headers, bullet points, and bold text.
6. Keep the tone educational but approachable.

Generate the notes now:`))

// levelLabel names a prerequisite level for the prompt.
func levelLabel(level int) string {
	switch level {
	case 0:
		return "Foundational"
	case 1:
		return "Intermediate"
	case 2:
		return "Advanced"
	default:
		return fmt.Sprintf("Level %d", level)
	}
}

// hierarchyText renders one line per level, in ascending level order.
func hierarchyText(groups map[int][]conceptmap.LevelEntry) string {
	levels := make([]int, 0, len(groups))
	for l := range groups {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var lines []string
	for _, l := range levels {
		names := make([]string, len(groups[l]))
		for i, e := range groups[l] {
			names[i] = e.Concept
		}
		lines = append(lines, fmt.Sprintf("**%s (Level %d):** %s",
			levelLabel(l), l, strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

// excerptsText renders the leading excerpt of each document (R2.3).
func excerptsText(docs []types.Document, excerptChars int) string {
	if excerptChars <= 0 {
		excerptChars = DefaultExcerptChars
	}
	var parts []string
	for i, d := range docs {
		text := d.Text
		if len(text) > excerptChars {
			text = text[:excerptChars]
		}
		parts = append(parts, fmt.Sprintf("--- Video %d (%s) ---\n%s", i+1, d.ID, text))
	}
	return strings.Join(parts, "\n\n")
}

// renderPrompt executes the notes prompt template.
func renderPrompt(result *conceptmap.Result, docs []types.Document, cfg types.NotesConfig) (string, error) {
	data := struct {
		DocCount  int
		Hierarchy string
		Excerpts  string
	}{
		DocCount:  len(docs),
		Hierarchy: hierarchyText(result.Groups),
		Excerpts:  excerptsText(docs, cfg.ExcerptChars),
	}
	var buf bytes.Buffer
	if err := notesPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
