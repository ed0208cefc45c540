// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"reflect"
	"testing"
)

func TestComputeLevelsLongestPath(t *testing.T) {
	// Diamond with a long arm: a → b → d and a → c → e → d.
	// d's level follows the longer path.
	g := NewGraph()
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		g.AddNode(c, 1, 1, 0)
	}
	g.AddEdge("a", "b", 1, OriginCooccurrence)
	g.AddEdge("b", "d", 1, OriginCooccurrence)
	g.AddEdge("a", "c", 1, OriginCooccurrence)
	g.AddEdge("c", "e", 1, OriginCooccurrence)
	g.AddEdge("e", "d", 1, OriginCooccurrence)

	levels := levelMap(ComputeLevels(g, map[string]float64{}))
	want := map[string]int{"a": 0, "b": 1, "c": 1, "e": 2, "d": 3}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("levels = %v, want %v", levels, want)
	}
}

// Every surviving edge must cross strictly upward in level.
func TestComputeLevelsMonotonicity(t *testing.T) {
	g := NewGraph()
	concepts := []string{"a", "b", "c", "d", "e", "f"}
	for _, c := range concepts {
		g.AddNode(c, 1, 1, 0)
	}
	g.AddEdge("a", "c", 1, OriginCooccurrence)
	g.AddEdge("b", "c", 1, OriginCooccurrence)
	g.AddEdge("c", "d", 1, OriginCooccurrence)
	g.AddEdge("c", "e", 1, OriginCooccurrence)
	g.AddEdge("d", "f", 1, OriginCooccurrence)
	g.AddEdge("b", "f", 1, OriginCooccurrence)

	levels := levelMap(ComputeLevels(g, map[string]float64{}))
	for _, e := range g.Edges() {
		if levels[e.From] >= levels[e.To] {
			t.Errorf("edge %s → %s violates level order: %d >= %d",
				e.From, e.To, levels[e.From], levels[e.To])
		}
	}
}

func TestComputeLevelsIsolatedNodesAreRoots(t *testing.T) {
	g := NewGraph()
	g.AddNode("loop", 5, 1, 0)
	g.AddNode("variable", 8, 1, 0)

	ordered := ComputeLevels(g, map[string]float64{"loop": 0.5, "variable": 0.5})
	for _, lc := range ordered {
		if lc.Level != 0 {
			t.Errorf("level(%s) = %d, want 0", lc.Concept, lc.Level)
		}
	}
}

func TestComputeLevelsSortsByLevelThenScore(t *testing.T) {
	g := NewGraph()
	for _, c := range []string{"r1", "r2", "child"} {
		g.AddNode(c, 1, 1, 0)
	}
	g.AddEdge("r1", "child", 1, OriginCooccurrence)

	scores := map[string]float64{"r1": 0.2, "r2": 0.5, "child": 0.3}
	ordered := ComputeLevels(g, scores)

	wantOrder := []string{"r2", "r1", "child"}
	for i, want := range wantOrder {
		if ordered[i].Concept != want {
			t.Errorf("ordered[%d] = %s, want %s (full: %v)", i, ordered[i].Concept, want, ordered)
		}
	}
}

func TestComputeLevelsEqualScoresBreakTiesByRank(t *testing.T) {
	g := NewGraph()
	g.AddNode("first", 1, 1, 0)
	g.AddNode("second", 1, 1, 0)

	scores := map[string]float64{"first": 0.5, "second": 0.5}
	ordered := ComputeLevels(g, scores)
	if ordered[0].Concept != "first" || ordered[1].Concept != "second" {
		t.Errorf("tie order = %v, want aggregation rank order", ordered)
	}
}

func TestLevelGroupsRebucketsWithoutReordering(t *testing.T) {
	ordered := []LeveledConcept{
		{Level: 0, Concept: "a", Score: 0.4},
		{Level: 0, Concept: "b", Score: 0.3},
		{Level: 1, Concept: "c", Score: 0.3},
	}

	groups := LevelGroups(ordered)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	want0 := []LevelEntry{{Concept: "a", Score: 0.4}, {Concept: "b", Score: 0.3}}
	if !reflect.DeepEqual(groups[0], want0) {
		t.Errorf("level 0 group = %v, want %v", groups[0], want0)
	}
	if len(groups[1]) != 1 || groups[1][0].Concept != "c" {
		t.Errorf("level 1 group = %v, want [c]", groups[1])
	}
}
