// Package sink holds the gridstate.Sink implementations that receive
// near-finished grids during search: a plain-file writer, and
// Postgres/Redis sinks for deployments that persist or broadcast them.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"crossgen/internal/gridstate"
)

// FileSink writes each emitted grid to dir as a text artifact named
// per the grid's unassigned-cell count and signature.
type FileSink struct {
	dir string
}

// NewFileSink returns a FileSink rooted at dir. dir is created on first
// write if it does not already exist.
func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (s *FileSink) EmitSolvable(g *gridstate.Grid) error  { return s.write(g) }
func (s *FileSink) EmitCloseCall(g *gridstate.Grid) error { return s.write(g) }

func (s *FileSink) write(g *gridstate.Grid) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("sink: creating %s: %w", s.dir, err)
	}

	n := g.Size()
	empty := n*n - g.FilledCells()
	signature := g.Signature()
	name := fmt.Sprintf("grid_%dx%d_%d_empty_%s.txt", n, n, empty, signature)

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sink: creating %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	writeArtifact(&b, g)
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("sink: writing %s: %w", path, err)
	}
	return nil
}

// writeArtifact renders the header, fill statistics, the grid with
// Unassigned cells shown as '·', the ordered placement list, and the
// sorted unique-word list.
func writeArtifact(b *strings.Builder, g *gridstate.Grid) {
	n := g.Size()

	fmt.Fprintf(b, "Attempts ceiling reference grid (%d unassigned cells)\n", n*n-g.FilledCells())
	fmt.Fprintf(b, "Filled cells: %d/%d\n", g.FilledCells(), n*n)
	fmt.Fprintf(b, "Words placed: %d\n\n", len(g.Placements()))

	b.WriteString("Grid:\n")
	b.WriteString("   ")
	for i := 0; i < n; i++ {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
	for r := 0; r < n; r++ {
		fmt.Fprintf(b, " %d ", r)
		for _, ch := range g.RowState(r) {
			if ch == gridstate.Unassigned {
				b.WriteRune('·')
			} else {
				b.WriteRune(ch)
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	b.WriteString("\nPlaced words:\n")
	words := make([]string, 0, len(g.Placements()))
	for i, p := range g.Placements() {
		fmt.Fprintf(b, "%2d. %q at (%d,%d) %s\n", i+1, p.Word, p.Row, p.Col, p.Dir)
		words = append(words, p.Word)
	}

	unique := dedupSorted(words)
	fmt.Fprintf(b, "\nUnique words placed (%d):\n", len(unique))
	for i, w := range unique {
		fmt.Fprintf(b, "%2d. %s\n", i+1, w)
	}
}

func dedupSorted(words []string) []string {
	set := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !set[w] {
			set[w] = true
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}
