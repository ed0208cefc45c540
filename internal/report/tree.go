// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/knowledge-map/internal/conceptmap"
)

// TreeItem is one node in a rendered tree.
type TreeItem struct {
	Label    string
	Children []TreeItem
}

// RenderTree renders items with box-drawing branch prefixes.
func RenderTree(items []TreeItem) string {
	var b strings.Builder
	for i, item := range items {
		renderTreeItem(&b, item, "", i == len(items)-1)
	}
	return b.String()
}

func renderTreeItem(b *strings.Builder, item TreeItem, prefix string, last bool) {
	branch := "├── "
	childPrefix := prefix + "│   "
	if last {
		branch = "└── "
		childPrefix = prefix + "    "
	}
	b.WriteString(prefix)
	b.WriteString(Dim(branch))
	b.WriteString(item.Label)
	b.WriteString("\n")

	for i, child := range item.Children {
		renderTreeItem(b, child, childPrefix, i == len(item.Children)-1)
	}
}

// ConceptTree renders the prerequisite tree rooted at one concept: the
// concept itself, then its direct prerequisites recursively down to the
// foundation. The acyclic graph bounds the depth.
func ConceptTree(result *conceptmap.Result, concept string) (string, error) {
	if result.Acyclic.Node(concept) == nil {
		return "", fmt.Errorf("concept %q is not in the map", concept)
	}

	levels := make(map[string]int, len(result.Ordered))
	for _, lc := range result.Ordered {
		levels[lc.Concept] = lc.Level
	}

	root := prerequisiteItem(result, levels, concept)
	return RenderTree([]TreeItem{root}), nil
}

func prerequisiteItem(result *conceptmap.Result, levels map[string]int, concept string) TreeItem {
	label := fmt.Sprintf("%s %s",
		LevelStyle(levels[concept]).Render(concept),
		Dim(fmt.Sprintf("(level %d)", levels[concept])))

	prereqs := result.Acyclic.Predecessors(concept)
	sort.Strings(prereqs)

	item := TreeItem{Label: label}
	for _, p := range prereqs {
		item.Children = append(item.Children, prerequisiteItem(result, levels, p))
	}
	return item
}
