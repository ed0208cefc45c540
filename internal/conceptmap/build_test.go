// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"reflect"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

// One document, two concepts, no causal phrases, no shared sentences:
// two isolated nodes, both at level 0.
func TestBuildIsolatedConcepts(t *testing.T) {
	docs := []types.Document{
		{
			ID:   "v0",
			Text: "A loop repeats instructions. A variable stores a value.",
			Concepts: []types.ConceptObservation{
				{Concept: "loop", Frequency: 5},
				{Concept: "variable", Frequency: 8},
			},
		},
	}

	res := Build(docs, types.MapConfig{})

	if res.Graph.NumNodes() != 2 {
		t.Fatalf("nodes = %d, want 2", res.Graph.NumNodes())
	}
	if res.Graph.NumEdges() != 0 {
		t.Errorf("edges = %d, want 0", res.Graph.NumEdges())
	}
	for _, lc := range res.Ordered {
		if lc.Level != 0 {
			t.Errorf("level(%s) = %d, want 0", lc.Concept, lc.Level)
		}
	}
}

// "Understanding recursion requires understanding functions." votes
// functions → recursion, so functions lands at level 0 and recursion at 1.
func TestBuildCausalOrdering(t *testing.T) {
	docs := []types.Document{
		{
			ID:   "v0",
			Text: "Understanding recursion requires understanding functions.",
			Concepts: []types.ConceptObservation{
				{Concept: "recursion", Frequency: 3},
				{Concept: "functions", Frequency: 3},
			},
		},
		{
			ID:   "v1",
			Text: "More about recursion here.",
			Concepts: []types.ConceptObservation{
				{Concept: "recursion", Frequency: 1},
			},
		},
	}

	res := Build(docs, types.MapConfig{})

	e := res.Graph.EdgeBetween("functions", "recursion")
	if e == nil || e.Origin != OriginCausal {
		t.Fatalf("edge functions → recursion = %+v, want causal", e)
	}

	levels := levelMap(res.Ordered)
	if levels["functions"] != 0 || levels["recursion"] != 1 {
		t.Errorf("levels = %v, want functions=0 recursion=1", levels)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	res := Build(nil, types.MapConfig{})

	if res.Graph.NumNodes() != 0 {
		t.Errorf("nodes = %d, want 0", res.Graph.NumNodes())
	}
	if len(res.Ordered) != 0 {
		t.Errorf("ordered = %v, want empty", res.Ordered)
	}
	if len(res.Scores) != 0 {
		t.Errorf("scores = %v, want empty", res.Scores)
	}
	if len(res.Groups) != 0 {
		t.Errorf("groups = %v, want empty", res.Groups)
	}
}

func TestBuildResultIsInternallyConsistent(t *testing.T) {
	docs := sampleCourse()
	res := Build(docs, types.MapConfig{})

	nodes := make(map[string]bool)
	for _, c := range res.Graph.Concepts() {
		nodes[c] = true
	}
	for _, e := range res.Graph.Edges() {
		if !nodes[e.From] || !nodes[e.To] {
			t.Errorf("edge %s → %s references a non-node", e.From, e.To)
		}
	}
	for _, lc := range res.Ordered {
		if !nodes[lc.Concept] {
			t.Errorf("leveled concept %q is not a graph node", lc.Concept)
		}
	}

	if !isAcyclic(res.Acyclic) {
		t.Error("acyclic graph contains a cycle")
	}

	levels := levelMap(res.Ordered)
	for _, e := range res.Acyclic.Edges() {
		if levels[e.From] >= levels[e.To] {
			t.Errorf("edge %s → %s violates level order", e.From, e.To)
		}
	}
}

// Two runs on identical input and configuration must serialize identically.
func TestBuildDeterminism(t *testing.T) {
	docs := sampleCourse()
	cfg := types.MapConfig{TopN: 10, CooccurrenceThreshold: 2}

	first := Build(docs, cfg)
	second := Build(docs, cfg)

	if !reflect.DeepEqual(first.Ordered, second.Ordered) {
		t.Fatalf("ordered sequences differ:\n%v\n%v", first.Ordered, second.Ordered)
	}

	a, err := yaml.Marshal(first.Ordered)
	if err != nil {
		t.Fatal(err)
	}
	b, err := yaml.Marshal(second.Ordered)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("serialized orderings are not byte-identical")
	}
}

func TestBuildAppliesTopN(t *testing.T) {
	docs := sampleCourse()
	res := Build(docs, types.MapConfig{TopN: 3})
	if res.Graph.NumNodes() != 3 {
		t.Errorf("nodes = %d, want 3", res.Graph.NumNodes())
	}
}

// sampleCourse is a small fixture resembling a programming lecture series.
func sampleCourse() []types.Document {
	return []types.Document{
		{
			ID: "v0",
			Text: "A variable stores a value. Every loop uses a variable. " +
				"Understanding a function requires understanding a variable.",
			Concepts: []types.ConceptObservation{
				{Concept: "variable", Frequency: 6},
				{Concept: "loop", Frequency: 3},
				{Concept: "function", Frequency: 2},
			},
		},
		{
			ID: "v1",
			Text: "A function groups statements. Recursion depends on a function. " +
				"A loop and a variable appear together again. A loop and a variable once more.",
			Concepts: []types.ConceptObservation{
				{Concept: "function", Frequency: 5},
				{Concept: "recursion", Frequency: 4},
				{Concept: "loop", Frequency: 1},
				{Concept: "variable", Frequency: 2},
			},
		},
		{
			ID:   "v2",
			Text: "Recursion elegantly solves tree problems. A tree is built on a node structure.",
			Concepts: []types.ConceptObservation{
				{Concept: "recursion", Frequency: 3},
				{Concept: "tree", Frequency: 4},
				{Concept: "node structure", Frequency: 2},
			},
		},
	}
}
