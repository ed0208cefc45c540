// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conceptmap

import (
	"testing"

	"github.com/pdiddy/knowledge-map/pkg/types"
)

func textDoc(id, text string) types.Document {
	return types.Document{ID: id, Text: text}
}

func TestCooccurrenceCountsSharedSentences(t *testing.T) {
	docs := []types.Document{
		textDoc("v0", "Loops use variables. Variables hold values. A loop repeats."),
	}
	m := newMatcher([]string{"loop", "variable"}, false)

	counts := Cooccurrence(docs, m)

	// "Loops use variables" contains both (loose substring matching).
	if got := counts[Pair{"loop", "variable"}]; got != 1 {
		t.Errorf("count(loop, variable) = %d, want 1", got)
	}
}

func TestCooccurrenceIsSymmetric(t *testing.T) {
	docs := []types.Document{
		textDoc("v0", "recursion and functions. functions and recursion. recursion needs functions."),
	}
	m := newMatcher([]string{"recursion", "functions"}, false)

	counts := Cooccurrence(docs, m)

	ab := counts[Pair{"recursion", "functions"}]
	ba := counts[Pair{"functions", "recursion"}]
	if ab != 3 || ba != 3 {
		t.Errorf("counts = (%d, %d), want symmetric (3, 3)", ab, ba)
	}
}

func TestCooccurrenceNoSharedSentence(t *testing.T) {
	docs := []types.Document{
		textDoc("v0", "A loop repeats work. A variable holds a value."),
	}
	m := newMatcher([]string{"loop", "variable"}, false)

	counts := Cooccurrence(docs, m)
	if len(counts) != 0 {
		t.Errorf("counts = %v, want empty", counts)
	}
}

func TestCooccurrenceAccumulatesAcrossDocuments(t *testing.T) {
	docs := []types.Document{
		textDoc("v0", "arrays and pointers together."),
		textDoc("v1", "pointers index arrays."),
	}
	m := newMatcher([]string{"arrays", "pointers"}, false)

	counts := Cooccurrence(docs, m)
	if got := counts[Pair{"arrays", "pointers"}]; got != 2 {
		t.Errorf("count(arrays, pointers) = %d, want 2", got)
	}
}
