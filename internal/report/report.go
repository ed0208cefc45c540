// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
)

// edgeDisplayLimit caps the prerequisite-link section so large maps stay
// readable in a terminal.
const edgeDisplayLimit = 15

// Render writes the full knowledge-map display: summary box, level
// sections, and the strongest prerequisite links.
func Render(w io.Writer, result *conceptmap.Result, docCount int) {
	fmt.Fprintln(w, RenderSummary(result, docCount))
	fmt.Fprintln(w, RenderLevels(result))
	if result.Acyclic.NumEdges() > 0 {
		fmt.Fprintln(w, RenderEdges(result, edgeDisplayLimit))
	}
}

// RenderSummary renders a boxed overview of the build: document, concept,
// link, and level counts, plus how many edges cycle resolution removed.
func RenderSummary(result *conceptmap.Result, docCount int) string {
	levels := 0
	if n := len(result.Ordered); n > 0 {
		levels = result.Ordered[n-1].Level + 1
	}
	removed := result.Graph.NumEdges() - result.Acyclic.NumEdges()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(fmt.Sprintf("%d", docCount)), Dim("videos analyzed"))
	fmt.Fprintf(&b, "%s  %s\n", Bold(fmt.Sprintf("%d", result.Graph.NumNodes())), Dim("concepts mapped"))
	fmt.Fprintf(&b, "%s  %s\n", Bold(fmt.Sprintf("%d", result.Acyclic.NumEdges())), Dim("prerequisite links"))
	fmt.Fprintf(&b, "%s  %s", Bold(fmt.Sprintf("%d", levels)), Dim("learning levels"))
	if removed > 0 {
		fmt.Fprintf(&b, "\n%s  %s", Bold(fmt.Sprintf("%d", removed)), Dim("circular links resolved"))
	}

	return RenderBox("Knowledge Map", b.String())
}

// RenderLevels renders one section per prerequisite level, foundation
// first. Each concept line carries its centrality score and the raw
// frequency and video spread from the dependency graph.
func RenderLevels(result *conceptmap.Result) string {
	var levels []int
	for level := range result.Groups {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var b strings.Builder
	for _, level := range levels {
		b.WriteString(LevelBadge(level))
		b.WriteString("\n")
		for _, entry := range result.Groups[level] {
			line := fmt.Sprintf("  %s %s", StyleFg.Render(entry.Concept),
				Dim(fmt.Sprintf("score %.4f", entry.Score)))
			if node := result.Graph.Node(entry.Concept); node != nil {
				line += Dim(fmt.Sprintf("  freq %d  videos %d", node.Frequency, node.Spread))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderEdges renders the strongest surviving prerequisite links, weight
// descending, as an aligned table.
func RenderEdges(result *conceptmap.Result, limit int) string {
	edges := result.Acyclic.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight > edges[j].Weight
	})
	if limit > 0 && len(edges) > limit {
		edges = edges[:limit]
	}

	rows := make([][]string, 0, len(edges))
	for _, e := range edges {
		origin := StylePurple.Render(string(e.Origin))
		if e.Origin == conceptmap.OriginCausal {
			origin = StyleBlue.Render(string(e.Origin))
		}
		rows = append(rows, []string{
			StyleFg.Render(e.From),
			Dim("→"),
			StyleFg.Render(e.To),
			fmt.Sprintf("%d", e.Weight),
			origin,
		})
	}

	return Header("Prerequisite links") + "\n" +
		RenderTable([]string{"Prerequisite", "", "Unlocks", "Weight", "Origin"}, rows)
}
