package search

import (
	"testing"

	"crossgen/internal/alphabet"
	"crossgen/internal/gridstate"
	"crossgen/internal/patternindex"
	"crossgen/internal/wordset"
)

func wordSquareConfig() alphabet.Config {
	return alphabet.Config{Letters: alphabet.Default, N: 3, M: 3, AttemptsCeiling: 5000}
}

func buildWordSquareIndex(t *testing.T) *patternindex.Index {
	t.Helper()
	ws := &wordset.Set{WordsPlaceable: map[string]bool{}, WordsCheckable: map[string]bool{}}
	for _, w := range []string{"kar", "ana", "ray"} {
		ws.WordsPlaceable[w] = true
		ws.WordsCheckable[w] = true
	}
	return patternindex.Build(ws, wordSquareConfig())
}

func TestWordPositionsInLiner_FindsEveryFittingOffset(t *testing.T) {
	got := wordPositionsInLiner("ana", "___", "...")
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("wordPositionsInLiner = %v, want [0]", got)
	}
}

func TestWordPositionsInLiner_RejectsBlockedOverlap(t *testing.T) {
	got := wordPositionsInLiner("ana", "a@_", "a..")
	if len(got) != 0 {
		t.Fatalf("expected no fit across a block cell, got %v", got)
	}
}

func TestGenerateCandidates_ExcludesAlreadyPlacedWords(t *testing.T) {
	idx := buildWordSquareIndex(t)
	g := gridstate.New(idx)
	if err := g.Place("kar", 0, 0, gridstate.Across); err != nil {
		t.Fatalf("Place: %v", err)
	}
	for _, c := range generateCandidates(g, idx) {
		if c.Word == "kar" {
			t.Fatalf("expected kar to be excluded from candidates, got %v", c)
		}
	}
}

func TestBucketByLength_PrefersFullLengthWords(t *testing.T) {
	cands := []Candidate{
		{Word: "an", Row: 0, Col: 0},
		{Word: "kar", Row: 0, Col: 0},
	}
	got := bucketByLength(cands, 3)
	if len(got) != 1 || got[0].Word != "kar" {
		t.Fatalf("bucketByLength = %v, want only the length-3 candidate", got)
	}
}

func TestDropTried_RemovesHistoryMatches(t *testing.T) {
	history := []Candidate{{Word: "kar", Row: 0, Col: 0, Dir: gridstate.Across}}
	cands := []Candidate{
		{Word: "kar", Row: 0, Col: 0, Dir: gridstate.Across},
		{Word: "ana", Row: 1, Col: 0, Dir: gridstate.Across},
	}
	got := dropTried(cands, history)
	if len(got) != 1 || got[0].Word != "ana" {
		t.Fatalf("dropTried = %v, want only ana", got)
	}
}
