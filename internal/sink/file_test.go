package sink

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"crossgen/internal/alphabet"
	"crossgen/internal/gridstate"
	"crossgen/internal/patternindex"
	"crossgen/internal/wordset"
)

func testConfig() alphabet.Config {
	return alphabet.Config{Letters: alphabet.Default, N: 5, M: 4, AttemptsCeiling: 1000}
}

func buildTestGrid(t *testing.T, words ...string) *gridstate.Grid {
	t.Helper()
	ws := &wordset.Set{WordsPlaceable: map[string]bool{}, WordsCheckable: map[string]bool{}}
	for _, w := range words {
		ws.WordsPlaceable[w] = true
		ws.WordsCheckable[w] = true
	}
	idx := patternindex.Build(ws, testConfig())
	g := gridstate.New(idx)
	if err := g.Place(words[0], 0, 0, gridstate.Across); err != nil {
		t.Fatalf("Place: %v", err)
	}
	return g
}

func TestFileSink_EmitSolvableWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(dir)
	g := buildTestGrid(t, "arena")

	if err := s.EmitSolvable(g); err != nil {
		t.Fatalf("EmitSolvable: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one artifact, got %d", len(entries))
	}

	body, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(body), "arena") {
		t.Errorf("artifact does not mention placed word arena:\n%s", body)
	}
	if !strings.Contains(entries[0].Name(), g.Signature()) {
		t.Errorf("artifact filename/body does not reference grid signature %s", g.Signature())
	}
}

func TestFileSink_EmitCloseCallCreatesDirIfMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "solvables")
	s := NewFileSink(dir)
	g := buildTestGrid(t, "alpha")

	if err := s.EmitCloseCall(g); err != nil {
		t.Fatalf("EmitCloseCall: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected sink dir to be created: %v", err)
	}
}
