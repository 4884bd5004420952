package integration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"crossgen/internal/alphabet"
	"crossgen/internal/patternindex"
	"crossgen/internal/search"
	"crossgen/internal/sink"
	"crossgen/internal/wordset"
)

// TestGenerateTenGridsEndToEnd drives the full pipeline — dictionary
// load, pattern index build, DFS search, file-sink artifact write —
// the way crossgen generate does, once for each of ten seeds. Seeds
// that exhaust the attempts ceiling are skipped; at least one must
// produce a complete grid.
func TestGenerateTenGridsEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tmpDir := t.TempDir()
	dictPath := filepath.Join(tmpDir, "words.txt")
	if err := os.WriteFile(dictPath, []byte(testDictionary), 0644); err != nil {
		t.Fatalf("failed to write test dictionary: %v", err)
	}

	cfg := alphabet.Config{
		Letters:         alphabet.Default,
		N:               5,
		M:               4,
		AttemptsCeiling: 20000,
	}

	words, err := wordset.Load(dictPath, cfg)
	if err != nil {
		t.Fatalf("failed to load dictionary: %v", err)
	}
	if len(words.WordsPlaceable) == 0 {
		t.Fatal("test dictionary produced zero placeable words")
	}

	idx := patternindex.Build(words, cfg)
	if idx.LinerCount() == 0 {
		t.Fatal("test dictionary produced zero liners; grid is unfillable")
	}

	sinkDir := filepath.Join(tmpDir, "solvables")
	fileSink := sink.NewFileSink(sinkDir)

	const gridCount = 10
	solved := 0

	for i := 1; i <= gridCount; i++ {
		searcher := search.New(idx, words, cfg, fileSink, int64(i*12345), nil)

		g, err := searcher.Run()
		if err != nil {
			if errors.Is(err, search.ErrAttemptsExhausted) {
				continue
			}
			t.Fatalf("search failed on seed %d: %v", i, err)
		}
		if g == nil {
			t.Fatalf("seed %d: search returned a nil grid with no error", i)
		}
		if !g.IsComplete() {
			t.Errorf("seed %d: grid is not fully filled (%d/%d cells)", i, g.FilledCells(), cfg.N*cfg.N)
		}
		if len(g.Placements()) == 0 {
			t.Errorf("seed %d: grid has no placements", i)
		}
		solved++
	}

	if solved == 0 {
		t.Fatal("no grids were solved across any seed; dictionary may be too sparse for a 5x5/min-4 grid")
	}
}

// testDictionary is a small, dense word list over the Turkish
// alphabet chosen to guarantee liners exist for a 5x5/min-4 grid.
const testDictionary = `
aba
abaci
adam
akar
akan
alan
anam
anka
arka
adak
bana
bazı
cani
canı
kara
kanı
nakış
anak
kadı
bakan
canım
manda
adama
anıma
`
