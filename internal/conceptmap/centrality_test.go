// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"math"
	"testing"
)

const scoreTol = 1e-9

func sumScores(scores map[string]float64) float64 {
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum
}

func TestCentralityEmptyGraph(t *testing.T) {
	scores := Centrality(NewGraph())
	if len(scores) != 0 {
		t.Errorf("scores = %v, want empty map", scores)
	}
}

func TestCentralityScoresSumToOne(t *testing.T) {
	g := NewGraph()
	for _, c := range []string{"a", "b", "c", "d"} {
		g.AddNode(c, 1, 1, 0)
	}
	g.AddEdge("a", "b", 3, OriginCausal)
	g.AddEdge("b", "c", 1, OriginCooccurrence)
	g.AddEdge("c", "a", 2, OriginCooccurrence)
	g.AddEdge("a", "d", 1, OriginCooccurrence)

	scores := Centrality(g)
	if got := sumScores(scores); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("score sum = %v, want 1.0", got)
	}
	if len(scores) != 4 {
		t.Errorf("got %d scores, want 4", len(scores))
	}
}

func TestCentralityEdgelessGraphIsUniform(t *testing.T) {
	g := NewGraph()
	g.AddNode("a", 1, 1, 0)
	g.AddNode("b", 1, 1, 0)

	scores := Centrality(g)
	if math.Abs(scores["a"]-0.5) > scoreTol || math.Abs(scores["b"]-0.5) > scoreTol {
		t.Errorf("scores = %v, want uniform 0.5", scores)
	}
}

// A node receiving all the weight ends up with the highest score.
func TestCentralityFavorsHeavilyLinkedNode(t *testing.T) {
	g := NewGraph()
	for _, c := range []string{"hub", "s1", "s2", "s3"} {
		g.AddNode(c, 1, 1, 0)
	}
	g.AddEdge("s1", "hub", 2, OriginCooccurrence)
	g.AddEdge("s2", "hub", 2, OriginCooccurrence)
	g.AddEdge("s3", "hub", 2, OriginCooccurrence)

	scores := Centrality(g)
	for _, c := range []string{"s1", "s2", "s3"} {
		if scores["hub"] <= scores[c] {
			t.Errorf("score(hub) = %v not above score(%s) = %v", scores["hub"], c, scores[c])
		}
	}
}

func TestCentralityEdgeWeightSteersRank(t *testing.T) {
	g := NewGraph()
	for _, c := range []string{"src", "heavy", "light"} {
		g.AddNode(c, 1, 1, 0)
	}
	g.AddEdge("src", "heavy", 9, OriginCausal)
	g.AddEdge("src", "light", 1, OriginCooccurrence)

	scores := Centrality(g)
	if scores["heavy"] <= scores["light"] {
		t.Errorf("score(heavy) = %v not above score(light) = %v", scores["heavy"], scores["light"])
	}
}
