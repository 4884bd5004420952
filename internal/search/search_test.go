package search

import (
	"errors"
	"testing"

	"crossgen/internal/alphabet"
	"crossgen/internal/patternindex"
	"crossgen/internal/wordset"
)

func TestRun_SolvesThreeByThreeWordSquare(t *testing.T) {
	idx := buildWordSquareIndex(t)
	ws := &wordset.Set{WordsPlaceable: map[string]bool{}, WordsCheckable: map[string]bool{}}
	for _, w := range []string{"kar", "ana", "ray"} {
		ws.WordsPlaceable[w] = true
		ws.WordsCheckable[w] = true
	}

	s := New(idx, ws, wordSquareConfig(), nil, 1, nil)
	g, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if g == nil {
		t.Fatal("expected a completed grid")
	}
	if !g.IsComplete() {
		t.Fatal("expected a fully-filled grid")
	}
	if len(g.Placements()) != 3 {
		t.Fatalf("expected exactly 3 placements (one per word), got %d", len(g.Placements()))
	}
}

func TestRun_AttemptsExhaustedWithZeroCeiling(t *testing.T) {
	idx := buildWordSquareIndex(t)
	ws := &wordset.Set{WordsPlaceable: map[string]bool{}, WordsCheckable: map[string]bool{}}
	cfg := wordSquareConfig()
	cfg.AttemptsCeiling = 0

	s := New(idx, ws, cfg, nil, 1, nil)
	_, err := s.Run()
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("Run with zero ceiling = %v, want ErrAttemptsExhausted", err)
	}
}

func TestRun_NoSolutionWhenDictionaryIsEmpty(t *testing.T) {
	cfg := alphabet.Config{Letters: alphabet.Default, N: 3, M: 3, AttemptsCeiling: 100}
	ws := &wordset.Set{WordsPlaceable: map[string]bool{}, WordsCheckable: map[string]bool{}}
	idx := patternindex.Build(ws, cfg)

	s := New(idx, ws, cfg, nil, 1, nil)
	g, err := s.Run()
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("Run with empty dictionary = %v, want ErrNoSolution", err)
	}
	if g != nil {
		t.Fatal("expected no solution with an empty dictionary")
	}
}
